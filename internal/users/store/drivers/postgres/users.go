package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
)

const (
	userColumns = `id, email, name, password, created_at, updated_at, deleted_at`

	createUserQuery = `
INSERT INTO users (id, email, name, password)
VALUES ($1, $2, $3, $4)
RETURNING id, email, name`

	getUserByIDQuery = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1 AND deleted_at IS NULL`

	getUserByEmailQuery = `
SELECT ` + userColumns + `
FROM users
WHERE lower(email) = lower($1) AND deleted_at IS NULL`

	updateUserQuery = `
UPDATE users
SET email      = COALESCE($1, email),
    name       = COALESCE($2, name),
    password   = COALESCE($3, password),
    updated_at = now()
WHERE id = $4 AND deleted_at IS NULL
RETURNING id, email, name`

	softDeleteUserQuery = `
UPDATE users
SET deleted_at = now()
WHERE id = $1 AND deleted_at IS NULL
RETURNING id, email, name`

	searchClause = `
  AND ($1::text = ''
       OR lower(email) LIKE $2
       OR lower(COALESCE(name, '')) LIKE $2)`

	countActiveUsersQuery = `
SELECT count(*)
FROM users
WHERE deleted_at IS NULL` + searchClause

	listActiveUsersQuery = `
SELECT id, email, name
FROM users
WHERE deleted_at IS NULL` + searchClause + `
ORDER BY updated_at DESC, id DESC
LIMIT $3 OFFSET $4`

	purgeDeletedUsersQuery = `
DELETE FROM users
WHERE deleted_at IS NOT NULL AND deleted_at < $1`
)

type usersRepo struct {
	db dbtx
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) (domain.SerializedUser, error) {
	var (
		out  domain.SerializedUser
		name sql.NullString
	)
	err := r.db.QueryRowContext(ctx, createUserQuery,
		u.ID, u.Email, nullString(u.Name), u.PasswordHash,
	).Scan(&out.ID, &out.Email, &name)
	if err != nil {
		return domain.SerializedUser{}, mapConflict(err)
	}
	out.Name = name.String
	return out, nil
}

func (r *usersRepo) FindByID(ctx context.Context, id string) (domain.SerializedUser, error) {
	u, err := r.FindByIDWithPassword(ctx, id)
	if err != nil {
		return domain.SerializedUser{}, err
	}
	return u.Serialize(), nil
}

func (r *usersRepo) FindByIDWithPassword(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, getUserByIDQuery, id)
}

func (r *usersRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, getUserByEmailQuery, email)
}

func (r *usersRepo) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var (
		u         domain.User
		name      sql.NullString
		deletedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Name = name.String
	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}
	return u, nil
}

func (r *usersRepo) Update(
	ctx context.Context,
	id string,
	upd domain.UserUpdate,
) (domain.SerializedUser, error) {
	var (
		out  domain.SerializedUser
		name sql.NullString
	)
	err := r.db.QueryRowContext(ctx, updateUserQuery,
		optionalString(upd.Email), optionalString(upd.Name), optionalString(upd.PasswordHash), id,
	).Scan(&out.ID, &out.Email, &name)
	if err != nil {
		return domain.SerializedUser{}, mapConflict(mapNotFound(err))
	}
	out.Name = name.String
	return out, nil
}

func (r *usersRepo) Remove(ctx context.Context, id string) (domain.SerializedUser, error) {
	var (
		out  domain.SerializedUser
		name sql.NullString
	)
	err := r.db.QueryRowContext(ctx, softDeleteUserQuery, id).Scan(&out.ID, &out.Email, &name)
	if err != nil {
		return domain.SerializedUser{}, mapNotFound(err)
	}
	out.Name = name.String
	return out, nil
}

func (r *usersRepo) Paginate(
	ctx context.Context,
	filter domain.UserFilter,
	q domain.PageQuery,
) (domain.Page[domain.SerializedUser], error) {
	q = q.Normalize()
	term, pattern := store.SearchPattern(filter.Search)

	var total int64
	if err := r.db.QueryRowContext(ctx, countActiveUsersQuery, term, pattern).Scan(&total); err != nil {
		return domain.Page[domain.SerializedUser]{}, fmt.Errorf("count users: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listActiveUsersQuery, term, pattern, q.PerPage, q.Offset())
	if err != nil {
		return domain.Page[domain.SerializedUser]{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	data := make([]domain.SerializedUser, 0, q.PerPage)
	for rows.Next() {
		var (
			u    domain.SerializedUser
			name sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Email, &name); err != nil {
			return domain.Page[domain.SerializedUser]{}, fmt.Errorf("scan user: %w", err)
		}
		u.Name = name.String
		data = append(data, u)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.SerializedUser]{}, fmt.Errorf("list users: %w", err)
	}

	return domain.Page[domain.SerializedUser]{
		Meta: domain.NewPageMeta(total, q),
		Data: data,
	}, nil
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, countActiveUsersQuery, "", "").Scan(&total)
	return total, err
}

func (r *usersRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, purgeDeletedUsersQuery, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func optionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
