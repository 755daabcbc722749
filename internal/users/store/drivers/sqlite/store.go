package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/internal/users/store/drivers/sqlite/gen"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases shared and serialises
	// writers, which SQLite does anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Name identifies the driver in health reports.
func (s *Store) Name() string { return "sqlite" }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users { return &usersRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// uniqueIndexFields maps named unique indexes to the columns they guard.
// SQLite reports expression indexes by name rather than by column.
var uniqueIndexFields = map[string][]string{
	"users_email_active_idx": {"email"},
}

// mapConflict turns a SQLite unique violation into a *store.ConflictError.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}

	var se *sqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return err
	}

	return &store.ConflictError{Fields: parseUniqueFields(se.Error())}
}

// parseUniqueFields extracts the column names from messages such as
// "UNIQUE constraint failed: users.email" or
// "UNIQUE constraint failed: index 'users_email_active_idx'".
func parseUniqueFields(msg string) []string {
	const marker = "UNIQUE constraint failed: "

	idx := strings.Index(msg, marker)
	if idx < 0 {
		return nil
	}
	rest := msg[idx+len(marker):]
	if end := strings.Index(rest, " ("); end >= 0 {
		rest = rest[:end]
	}

	if strings.HasPrefix(rest, "index ") {
		name := strings.Trim(strings.TrimPrefix(rest, "index "), "'\"")
		return uniqueIndexFields[name]
	}

	var fields []string
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if dot := strings.LastIndex(part, "."); dot >= 0 {
			part = part[dot+1:]
		}
		if part != "" {
			fields = append(fields, part)
		}
	}
	return fields
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapUser(row gen.User) domain.User {
	u := domain.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         mapNullString(row.Name),
		PasswordHash: row.Password,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.DeletedAt.Valid {
		deletedAt := row.DeletedAt.Time
		u.DeletedAt = &deletedAt
	}
	return u
}

func serialized(id, email string, name sql.NullString) domain.SerializedUser {
	return domain.SerializedUser{
		ID:    id,
		Email: email,
		Name:  mapNullString(name),
	}
}
