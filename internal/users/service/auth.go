package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/pkg/cryptox"
	"github.com/aussiebroadwan/usersapi/pkg/jwtx"
	"github.com/aussiebroadwan/usersapi/pkg/mailx"
	"github.com/aussiebroadwan/usersapi/pkg/slogx"
)

const (
	ResetPasswordSubject = "Password reset"
	resetPasswordPath    = "/auth/reset-password"
)

// AuthService implements signup, login and the password reset flow. All
// flows are stateless; nothing about a session is stored server-side.
type AuthService struct {
	Users       *UserService
	Store       store.Store
	Tokens      *TokenService
	Mailer      mailx.Sender
	FrontendURL string
}

// Signup creates the user and logs them in.
func (s *AuthService) Signup(ctx context.Context, in domain.CreateUserInput) (domain.Session, error) {
	user, err := s.Users.Create(ctx, in)
	if err != nil {
		return domain.Session{}, err
	}
	return s.Login(ctx, user.ID)
}

// Login issues an access token for an already authenticated user id.
func (s *AuthService) Login(ctx context.Context, id string) (domain.Session, error) {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	token, err := s.Tokens.Sign(user, "")
	if err != nil {
		return domain.Session{}, fmt.Errorf("sign access token: %w", err)
	}

	return domain.Session{User: user, AccessToken: token}, nil
}

func (s *AuthService) Profile(ctx context.Context, id string) (domain.SerializedUser, error) {
	user, err := s.Store.Users().FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.SerializedUser{}, ErrUserNotFound
	}
	return user, err
}

// ValidateUser checks an email and password pair.
func (s *AuthService) ValidateUser(ctx context.Context, email, password string) (domain.SerializedUser, error) {
	user, err := s.Store.Users().FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return domain.SerializedUser{}, ErrUserNotFound
	}
	if err != nil {
		return domain.SerializedUser{}, err
	}

	switch err := cryptox.VerifyPassword(password, user.PasswordHash); {
	case errors.Is(err, cryptox.ErrPasswordMismatch):
		return domain.SerializedUser{}, ErrIncorrectPassword
	case err != nil:
		return domain.SerializedUser{}, err
	}

	return user.Serialize(), nil
}

// ForgotPassword mails a reset link whose token is signed with a secret
// derived from the current password hash, so it is single use.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	token, err := s.Tokens.Sign(user.Serialize(), s.Tokens.ResetSecret(user.PasswordHash))
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	err = s.Mailer.Send(ctx, mailx.Message{
		To:      user.Email,
		Subject: ResetPasswordSubject,
		Body:    "Open the link to reset your password:\n\n" + s.ResetLink(user.ID, token),
	})
	if err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	log.Info("password reset link sent", "user_id", user.ID)
	return nil
}

// ResetPassword verifies the one-time token against the current hash,
// stores the new password and logs the user in.
func (s *AuthService) ResetPassword(ctx context.Context, id, password, token string) (domain.Session, error) {
	user, err := s.Store.Users().FindByIDWithPassword(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, ErrUserNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}

	claims, err := s.Tokens.Verify(token, s.Tokens.ResetSecret(user.PasswordHash))
	if err != nil {
		return domain.Session{}, err
	}
	if claims.UserID != user.ID {
		return domain.Session{}, &TokenError{Cause: jwtx.ErrInvalidClaim}
	}

	if _, err := s.Users.Update(ctx, id, domain.UpdateUserInput{Password: &password}); err != nil {
		return domain.Session{}, err
	}

	return s.Login(ctx, id)
}

// ResetLink builds the frontend URL carried by the reset email.
func (s *AuthService) ResetLink(id, token string) string {
	base := strings.TrimRight(s.FrontendURL, "/")
	return base + resetPasswordPath + "?id=" + url.QueryEscape(id) + "&access-token=" + url.QueryEscape(token)
}
