package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// ConflictError reports a unique constraint violation and the fields that
// collided. It matches ErrAlreadyExists with errors.Is.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("store: unique constraint violated on [%s]", strings.Join(e.Fields, ", "))
}

func (e *ConflictError) Is(target error) bool { return target == ErrAlreadyExists }

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off it as methods so a Tx-scoped Store
// hands out the same repositories bound to the transaction.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. It rolls back when fn returns
	// an error and commits otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Driver names the backend of s, or "unknown" when it does not say.
func Driver(s Store) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "unknown"
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users is the user repository. Every method ignores soft-deleted rows unless
// it says otherwise.
type Users interface {
	// Create inserts a new user (id is provided by the app via ULID).
	// Returns *ConflictError when the email is taken by a live user.
	Create(ctx context.Context, u domain.User) (domain.SerializedUser, error)

	// FindByID returns the public view of a live user.
	FindByID(ctx context.Context, id string) (domain.SerializedUser, error)

	// FindByIDWithPassword returns the full record including the password hash.
	FindByIDWithPassword(ctx context.Context, id string) (domain.User, error)

	// FindByEmail looks up a live user by email, case-insensitively.
	FindByEmail(ctx context.Context, email string) (domain.User, error)

	// Update applies a partial update and bumps updated_at.
	Update(ctx context.Context, id string, upd domain.UserUpdate) (domain.SerializedUser, error)

	// Remove soft deletes a user by setting deleted_at. Removing an already
	// deleted user returns ErrNotFound.
	Remove(ctx context.Context, id string) (domain.SerializedUser, error)

	// Paginate lists live users, most recently updated first.
	Paginate(
		ctx context.Context,
		filter domain.UserFilter,
		q domain.PageQuery,
	) (domain.Page[domain.SerializedUser], error)

	// Count returns the number of live users.
	Count(ctx context.Context) (int64, error)

	// PurgeDeletedBefore physically removes users soft deleted before cutoff.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SearchPattern lowercases a search term and builds an escaped LIKE pattern
// for it. An empty term yields two empty strings.
func SearchPattern(search string) (term, pattern string) {
	term = strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return "", ""
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return term, "%" + escaped + "%"
}
