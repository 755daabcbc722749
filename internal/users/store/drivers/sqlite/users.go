package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/internal/users/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) (domain.SerializedUser, error) {
	row, err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:       u.ID,
		Email:    u.Email,
		Name:     mapStringNull(u.Name),
		Password: u.PasswordHash,
	})
	if err != nil {
		return domain.SerializedUser{}, mapConflict(err)
	}
	return serialized(row.ID, row.Email, row.Name), nil
}

func (r *usersRepo) FindByID(ctx context.Context, id string) (domain.SerializedUser, error) {
	u, err := r.FindByIDWithPassword(ctx, id)
	if err != nil {
		return domain.SerializedUser{}, err
	}
	return u.Serialize(), nil
}

func (r *usersRepo) FindByIDWithPassword(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) Update(
	ctx context.Context,
	id string,
	upd domain.UserUpdate,
) (domain.SerializedUser, error) {
	row, err := r.q.UpdateUser(ctx, gen.UpdateUserParams{
		Email:    mapOptionalString(upd.Email),
		Name:     mapOptionalString(upd.Name),
		Password: mapOptionalString(upd.PasswordHash),
		ID:       id,
	})
	if err != nil {
		return domain.SerializedUser{}, mapConflict(mapNotFound(err))
	}
	return serialized(row.ID, row.Email, row.Name), nil
}

func (r *usersRepo) Remove(ctx context.Context, id string) (domain.SerializedUser, error) {
	row, err := r.q.SoftDeleteUser(ctx, id)
	if err != nil {
		return domain.SerializedUser{}, mapNotFound(err)
	}
	return serialized(row.ID, row.Email, row.Name), nil
}

func (r *usersRepo) Paginate(
	ctx context.Context,
	filter domain.UserFilter,
	q domain.PageQuery,
) (domain.Page[domain.SerializedUser], error) {
	q = q.Normalize()
	search, pattern := store.SearchPattern(filter.Search)

	total, err := r.q.CountActiveUsers(ctx, gen.CountActiveUsersParams{
		Search:  search,
		Pattern: pattern,
	})
	if err != nil {
		return domain.Page[domain.SerializedUser]{}, err
	}

	rows, err := r.q.ListActiveUsers(ctx, gen.ListActiveUsersParams{
		Search:  search,
		Pattern: pattern,
		Limit:   int64(q.PerPage),
		Offset:  int64(q.Offset()),
	})
	if err != nil {
		return domain.Page[domain.SerializedUser]{}, err
	}

	data := make([]domain.SerializedUser, 0, len(rows))
	for _, row := range rows {
		data = append(data, serialized(row.ID, row.Email, row.Name))
	}

	return domain.Page[domain.SerializedUser]{
		Meta: domain.NewPageMeta(total, q),
		Data: data,
	}, nil
}

func (r *usersRepo) Count(ctx context.Context) (int64, error) {
	return r.q.CountActiveUsers(ctx, gen.CountActiveUsersParams{Search: ""})
}

func (r *usersRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.PurgeDeletedUsers(ctx, cutoff.UTC().Unix())
}
