package usersdk

import (
	"context"
	"net/http"
)

// Signup creates an account and returns a Session for it.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*Session, error) {
	var out SessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/signup", req, "", &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return c.newSession(out), nil
}

// Login exchanges an email and password for a Session.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	req := LoginRequest{Email: email, Password: password}

	var out SessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, "", &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return c.newSession(out), nil
}

// ForgotPassword asks the service to email a reset link to the user.
func (c *SDKClient) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	req := ForgotPasswordRequest{Email: email}

	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", req, "", &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password using the id and token from a reset link.
// The returned Session is signed with the regular secret.
func (c *SDKClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*Session, error) {
	var out SessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password", req, "", &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return c.newSession(out), nil
}
