package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// The parser's own sentinels, re-exported so callers can classify failures
// without importing the jwt package.
var (
	ErrMalformed   = jwt.ErrTokenMalformed
	ErrInvalidSig  = jwt.ErrTokenSignatureInvalid
	ErrExpired     = jwt.ErrTokenExpired
	ErrNotYetValid = jwt.ErrTokenNotValidYet

	ErrEmptySecret  = errors.New("jwtx: empty signing secret")
	ErrInvalidClaim = errors.New("invalid token claims")
)
