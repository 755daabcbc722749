package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/aussiebroadwan/usersapi/pkg/cryptox"
	"github.com/aussiebroadwan/usersapi/pkg/idx"
)

func TestListKey(t *testing.T) {
	q := domain.PageQuery{Page: 2, PerPage: 10}
	require.Equal(t, "users:all:10:2", ListKey(domain.UserFilter{}, q))
	require.Equal(t, "users:all:10:2:jo", ListKey(domain.UserFilter{Search: " JO "}, q))
	require.Equal(t, "users:01ABC", UserKey("01ABC"))
}

func TestUserService_Create(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	u := f.create(t, "  John@Example.COM ", "John", "password1")
	require.True(t, idx.Valid(u.ID))
	require.Equal(t, "john@example.com", u.Email)

	full, err := f.store.Users().FindByIDWithPassword(ctx, u.ID)
	require.NoError(t, err)
	require.NotEqual(t, "password1", full.PasswordHash)
	require.True(t, cryptox.CheckPassword("password1", full.PasswordHash))

	_, err = f.users.Create(ctx, domain.CreateUserInput{Email: "JOHN@example.com", Name: "Other", Password: "password2"})
	var conflict *store.ConflictError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, []string{"email"}, conflict.Fields)
}

func TestUserService_FindAllReadThrough(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	a := f.create(t, "a@example.com", "A", "password1")
	f.create(t, "b@example.com", "B", "password1")

	q := domain.PageQuery{Page: 1, PerPage: 10}
	page, err := f.users.FindAll(ctx, domain.UserFilter{}, q)
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Meta.Total)

	members, err := f.cache.Members(ctx, AllUsersKey)
	require.NoError(t, err)
	require.Equal(t, []string{"users:all:10:1"}, members)

	// A write that bypasses the service is not visible until invalidation.
	renamed := "Changed"
	_, err = f.store.Users().Update(ctx, a.ID, domain.UserUpdate{Name: &renamed})
	require.NoError(t, err)

	cached, err := f.users.FindAll(ctx, domain.UserFilter{}, q)
	require.NoError(t, err)
	require.Equal(t, page, cached)

	// A service write drops every list page and the tracking set.
	f.create(t, "c@example.com", "C", "password1")

	_, err = f.cache.Get(ctx, "users:all:10:1")
	require.ErrorIs(t, err, cachex.ErrMiss)
	members, err = f.cache.Members(ctx, AllUsersKey)
	require.NoError(t, err)
	require.Empty(t, members)

	fresh, err := f.users.FindAll(ctx, domain.UserFilter{}, q)
	require.NoError(t, err)
	require.Equal(t, int64(3), fresh.Meta.Total)
	require.Equal(t, "c@example.com", fresh.Data[0].Email)
}

func TestUserService_FindAllSearchAndDefaults(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.create(t, "john@example.com", "John", "password1")
	f.create(t, "jane@example.com", "Jane", "password1")

	page, err := f.users.FindAll(ctx, domain.UserFilter{Search: "JOHN"}, domain.PageQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	require.Equal(t, domain.DefaultPerPage, page.Meta.PerPage)
	require.Equal(t, 1, page.Meta.CurrentPage)

	_, err = f.cache.Get(ctx, "users:all:10:1:john")
	require.NoError(t, err)
}

func TestUserService_FindOne(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.users.FindOne(ctx, idx.New().String())
	require.ErrorIs(t, err, ErrUserNotFound)

	u := f.create(t, "a@example.com", "A", "password1")

	got, err := f.users.FindOne(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u, got)

	_, err = f.cache.Get(ctx, UserKey(u.ID))
	require.NoError(t, err)

	name := "Renamed"
	updated, err := f.users.Update(ctx, u.ID, domain.UpdateUserInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)

	_, err = f.cache.Get(ctx, UserKey(u.ID))
	require.ErrorIs(t, err, cachex.ErrMiss)

	got, err = f.users.FindOne(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, name, got.Name)
}

func TestUserService_Update(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	a := f.create(t, "a@example.com", "A", "password1")
	f.create(t, "b@example.com", "B", "password1")

	t.Run("normalises email and re-hashes password", func(t *testing.T) {
		email, password := " NEW@Example.com", "password2"
		got, err := f.users.Update(ctx, a.ID, domain.UpdateUserInput{Email: &email, Password: &password})
		require.NoError(t, err)
		require.Equal(t, "new@example.com", got.Email)

		full, err := f.store.Users().FindByIDWithPassword(ctx, a.ID)
		require.NoError(t, err)
		require.True(t, cryptox.CheckPassword(password, full.PasswordHash))
	})

	t.Run("conflict", func(t *testing.T) {
		email := "B@example.com"
		_, err := f.users.Update(ctx, a.ID, domain.UpdateUserInput{Email: &email})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("missing user", func(t *testing.T) {
		name := "x"
		_, err := f.users.Update(ctx, idx.New().String(), domain.UpdateUserInput{Name: &name})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestUserService_Remove(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	u := f.create(t, "a@example.com", "A", "password1")
	_, err := f.users.FindOne(ctx, u.ID)
	require.NoError(t, err)

	removed, err := f.users.Remove(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u, removed)

	_, err = f.users.FindOne(ctx, u.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.users.Remove(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// The address is free again once the previous owner is deleted.
	f.create(t, "a@example.com", "A2", "password1")
}

func TestUserService_CacheFailuresDoNotFailRequests(t *testing.T) {
	f := newFixture(t, brokenCache{})
	ctx := context.Background()

	u := f.create(t, "a@example.com", "A", "password1")

	got, err := f.users.FindOne(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u, got)

	page, err := f.users.FindAll(ctx, domain.UserFilter{}, domain.PageQuery{})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	_, err = f.users.Remove(ctx, u.ID)
	require.NoError(t, err)
}
