package usersdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// CreateUser creates a user without logging in.
func (c *SDKClient) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var out User
	if err := c.doJSON(ctx, http.MethodPost, "/users", req, "", &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns one page of live users, most recently updated first.
func (c *SDKClient) ListUsers(ctx context.Context, params ListUsersParams) (*UsersPage, error) {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.PerPage > 0 {
		q.Set("perPage", strconv.Itoa(params.PerPage))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}

	path := "/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out UsersPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, "", &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a single user by id.
func (c *SDKClient) GetUser(ctx context.Context, id string) (*User, error) {
	var out User
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, "", &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update and returns the updated user.
func (c *SDKClient) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*User, error) {
	var out User
	if err := c.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(id), req, "", &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser soft-deletes a user and returns its last state.
func (c *SDKClient) DeleteUser(ctx context.Context, id string) (*User, error) {
	var out User
	if err := c.doJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, "", &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
