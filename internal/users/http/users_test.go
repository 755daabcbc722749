package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/pkg/usersdk"
)

func strPtr(s string) *string { return &s }

func TestUsersCRUD(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)
	ctx := t.Context()

	created, err := srv.client.CreateUser(ctx, usersdk.CreateUserRequest{
		Email: "Alice@Example.com", Name: "Alice", Password: testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice@example.com", created.Email)

	got, err := srv.client.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	updated, err := srv.client.UpdateUser(ctx, created.ID, usersdk.UpdateUserRequest{Name: strPtr("Alice Liddell")})
	require.NoError(t, err)
	require.Equal(t, "Alice Liddell", updated.Name)
	require.Equal(t, created.Email, updated.Email)

	// The cached entry is dropped on update.
	got, err = srv.client.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice Liddell", got.Name)

	_, err = srv.client.UpdateUser(ctx, created.ID, usersdk.UpdateUserRequest{Password: strPtr("n3w-s3cret-pass")})
	require.NoError(t, err)
	_, err = srv.client.Login(ctx, "alice@example.com", "n3w-s3cret-pass")
	require.NoError(t, err)

	deleted, err := srv.client.DeleteUser(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, deleted.ID)

	_, err = srv.client.GetUser(ctx, created.ID)
	requireAPIError(t, err, http.StatusNotFound, "User not found.", "Not Found")

	_, err = srv.client.DeleteUser(ctx, created.ID)
	requireAPIError(t, err, http.StatusNotFound, "Record not found.", "")

	_, err = srv.client.UpdateUser(ctx, created.ID, usersdk.UpdateUserRequest{Name: strPtr("Ghost")})
	requireAPIError(t, err, http.StatusNotFound, "Record not found.", "")

	// The email is free again once its owner is deleted.
	_, err = srv.client.CreateUser(ctx, usersdk.CreateUserRequest{
		Email: "alice@example.com", Name: "Alice II", Password: testPassword,
	})
	require.NoError(t, err)
}

func TestUpdateUserValidation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)
	ctx := t.Context()

	a := srv.signup(t, "a@example.com", "A").User
	srv.signup(t, "b@example.com", "B")

	tests := []struct {
		name    string
		req     usersdk.UpdateUserRequest
		status  int
		message []string
		reason  string
	}{
		{
			name:    "bad email",
			req:     usersdk.UpdateUserRequest{Email: strPtr("nope")},
			status:  http.StatusBadRequest,
			message: []string{"email must be an email"},
			reason:  "Bad Request",
		},
		{
			name:    "empty name and short password",
			req:     usersdk.UpdateUserRequest{Name: strPtr(""), Password: strPtr("short")},
			status:  http.StatusBadRequest,
			message: []string{"name should not be empty", "password must be longer than or equal to 8 characters"},
			reason:  "Bad Request",
		},
		{
			name:    "email taken",
			req:     usersdk.UpdateUserRequest{Email: strPtr("B@example.com")},
			status:  http.StatusConflict,
			message: []string{"The fields [email] are already in use."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.client.UpdateUser(ctx, a.ID, tt.req)
			apiErr := requireAPIError(t, err, tt.status, "", tt.reason)
			require.Equal(t, tt.message, apiErr.Messages)
		})
	}

	t.Run("empty name is not stored", func(t *testing.T) {
		_, err := srv.client.UpdateUser(ctx, a.ID, usersdk.UpdateUserRequest{Name: strPtr("")})
		requireAPIError(t, err, http.StatusBadRequest, "name should not be empty", "Bad Request")

		got, err := srv.client.GetUser(ctx, a.ID)
		require.NoError(t, err)
		require.Equal(t, "A", got.Name)
	})

	t.Run("empty patch keeps the user", func(t *testing.T) {
		got, err := srv.client.UpdateUser(ctx, a.ID, usersdk.UpdateUserRequest{})
		require.NoError(t, err)
		require.Equal(t, a, *got)
	})
}

func TestListUsers(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)
	ctx := t.Context()

	for i := range 3 {
		_, err := srv.users.Create(ctx, domain.CreateUserInput{
			Email:    fmt.Sprintf("user%d@example.com", i),
			Name:     fmt.Sprintf("User %d", i),
			Password: testPassword,
		})
		require.NoError(t, err)
	}
	_, err := srv.users.Create(ctx, domain.CreateUserInput{Email: "zed@example.org", Name: "Zed", Password: testPassword})
	require.NoError(t, err)

	t.Run("first page", func(t *testing.T) {
		page, err := srv.client.ListUsers(ctx, usersdk.ListUsersParams{Page: 1, PerPage: 3})
		require.NoError(t, err)
		require.Len(t, page.Data, 3)
		require.Equal(t, int64(4), page.Meta.Total)
		require.Equal(t, 2, page.Meta.LastPage)
		require.Equal(t, 1, page.Meta.CurrentPage)
		require.Equal(t, 3, page.Meta.PerPage)
		require.Nil(t, page.Meta.Prev)
		require.NotNil(t, page.Meta.Next)
		require.Equal(t, 2, *page.Meta.Next)
	})

	t.Run("last page", func(t *testing.T) {
		page, err := srv.client.ListUsers(ctx, usersdk.ListUsersParams{Page: 2, PerPage: 3})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.NotNil(t, page.Meta.Prev)
		require.Equal(t, 1, *page.Meta.Prev)
		require.Nil(t, page.Meta.Next)
	})

	t.Run("search", func(t *testing.T) {
		page, err := srv.client.ListUsers(ctx, usersdk.ListUsersParams{Search: "EXAMPLE.ORG"})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.Equal(t, "zed@example.org", page.Data[0].Email)
		require.Equal(t, int64(1), page.Meta.Total)
	})

	t.Run("invalid params fall back to defaults", func(t *testing.T) {
		resp, err := http.Get(srv.url + "/users?page=abc&perPage=-4")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page usersdk.UsersPage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		require.Equal(t, 1, page.Meta.CurrentPage)
		require.Equal(t, 10, page.Meta.PerPage)
		require.Len(t, page.Data, 4)
	})

	t.Run("perPage is capped", func(t *testing.T) {
		page, err := srv.client.ListUsers(ctx, usersdk.ListUsersParams{PerPage: 500})
		require.NoError(t, err)
		require.Equal(t, 100, page.Meta.PerPage)
	})

	t.Run("writes invalidate cached pages", func(t *testing.T) {
		before, err := srv.client.ListUsers(ctx, usersdk.ListUsersParams{})
		require.NoError(t, err)

		_, err = srv.client.CreateUser(ctx, usersdk.CreateUserRequest{
			Email: "late@example.com", Name: "Late", Password: testPassword,
		})
		require.NoError(t, err)

		after, err := srv.client.ListUsers(ctx, usersdk.ListUsersParams{})
		require.NoError(t, err)
		require.Equal(t, before.Meta.Total+1, after.Meta.Total)
	})

	t.Run("empty result", func(t *testing.T) {
		page, err := srv.client.ListUsers(ctx, usersdk.ListUsersParams{Search: "no-such-user"})
		require.NoError(t, err)
		require.NotNil(t, page.Data)
		require.Empty(t, page.Data)
		require.Equal(t, 0, page.Meta.LastPage)
	})
}

func TestUserWithoutNameRendersNull(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	// Rows created outside the API may carry a NULL name.
	u, err := srv.users.Create(t.Context(), domain.CreateUserInput{
		Email: "legacy@example.com", Password: testPassword,
	})
	require.NoError(t, err)

	resp, err := http.Get(srv.url + "/users/" + u.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Contains(t, body, "name")
	require.Nil(t, body["name"])
}
