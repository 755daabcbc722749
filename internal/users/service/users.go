package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/aussiebroadwan/usersapi/pkg/cryptox"
	"github.com/aussiebroadwan/usersapi/pkg/idx"
	"github.com/aussiebroadwan/usersapi/pkg/slogx"
)

// AllUsersKey is the set tracking every cached list page.
const AllUsersKey = "users:all"

// UserKey is the cache key of a single user.
func UserKey(id string) string { return "users:" + id }

// ListKey is the cache key of one list page.
func ListKey(filter domain.UserFilter, q domain.PageQuery) string {
	key := fmt.Sprintf("%s:%d:%d", AllUsersKey, q.PerPage, q.Page)
	if s := strings.ToLower(strings.TrimSpace(filter.Search)); s != "" {
		key += ":" + s
	}
	return key
}

// UserService owns user CRUD and keeps the read-through cache coherent.
// Cache errors are logged and never fail a request.
type UserService struct {
	Store store.Store
	Cache cachex.Cache
}

func (s *UserService) Create(ctx context.Context, in domain.CreateUserInput) (domain.SerializedUser, error) {
	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.SerializedUser{}, err
	}

	user, err := s.Store.Users().Create(ctx, domain.User{
		ID:           idx.New().String(),
		Email:        normalizeEmail(in.Email),
		Name:         in.Name,
		PasswordHash: hash,
	})
	if err != nil {
		return domain.SerializedUser{}, err
	}

	s.invalidate(ctx, "")
	return user, nil
}

func (s *UserService) FindAll(
	ctx context.Context,
	filter domain.UserFilter,
	q domain.PageQuery,
) (domain.Page[domain.SerializedUser], error) {
	q = q.Normalize()
	key := ListKey(filter, q)

	var page domain.Page[domain.SerializedUser]
	if s.cacheGet(ctx, key, &page) {
		return page, nil
	}

	page, err := s.Store.Users().Paginate(ctx, filter, q)
	if err != nil {
		return domain.Page[domain.SerializedUser]{}, err
	}

	if s.cacheSet(ctx, key, page) {
		if err := s.Cache.AddToSet(ctx, AllUsersKey, key); err != nil {
			slogx.FromContext(ctx).Warn("cache track failed", "key", key, "error", err)
		}
	}
	return page, nil
}

func (s *UserService) FindOne(ctx context.Context, id string) (domain.SerializedUser, error) {
	key := UserKey(id)

	var user domain.SerializedUser
	if s.cacheGet(ctx, key, &user) {
		return user, nil
	}

	user, err := s.Store.Users().FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.SerializedUser{}, ErrUserNotFound
	}
	if err != nil {
		return domain.SerializedUser{}, err
	}

	s.cacheSet(ctx, key, user)
	return user, nil
}

// Update applies a partial update. The password is re-hashed and the email
// normalised before storing.
func (s *UserService) Update(
	ctx context.Context,
	id string,
	in domain.UpdateUserInput,
) (domain.SerializedUser, error) {
	upd := domain.UserUpdate{Name: in.Name}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		upd.Email = &email
	}
	if in.Password != nil {
		hash, err := cryptox.HashPassword(*in.Password)
		if err != nil {
			return domain.SerializedUser{}, err
		}
		upd.PasswordHash = &hash
	}

	user, err := s.Store.Users().Update(ctx, id, upd)
	if err != nil {
		return domain.SerializedUser{}, err
	}

	s.invalidate(ctx, id)
	return user, nil
}

func (s *UserService) Remove(ctx context.Context, id string) (domain.SerializedUser, error) {
	user, err := s.Store.Users().Remove(ctx, id)
	if err != nil {
		return domain.SerializedUser{}, err
	}

	s.invalidate(ctx, id)
	return user, nil
}

// invalidate drops every cached list page, the tracking set and, when id is
// set, the user entry.
func (s *UserService) invalidate(ctx context.Context, id string) {
	log := slogx.FromContext(ctx)

	keys, err := s.Cache.Members(ctx, AllUsersKey)
	if err != nil {
		log.Warn("cache members failed", "key", AllUsersKey, "error", err)
	}
	keys = append(keys, AllUsersKey)
	if id != "" {
		keys = append(keys, UserKey(id))
	}

	if err := s.Cache.Delete(ctx, keys...); err != nil {
		log.Warn("cache invalidate failed", "keys", len(keys), "error", err)
	}
}

func (s *UserService) cacheGet(ctx context.Context, key string, dst any) bool {
	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cachex.ErrMiss) {
			slogx.FromContext(ctx).Warn("cache get failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slogx.FromContext(ctx).Warn("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (s *UserService) cacheSet(ctx context.Context, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err == nil {
		err = s.Cache.Set(ctx, key, raw)
	}
	if err != nil {
		slogx.FromContext(ctx).Warn("cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
