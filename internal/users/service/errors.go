package service

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)

// TokenError wraps a token verification failure. Its message is the JWT
// library's own so clients see why the token was rejected.
type TokenError struct {
	Cause error
}

func (e *TokenError) Error() string { return e.Cause.Error() }

func (e *TokenError) Unwrap() error { return e.Cause }
