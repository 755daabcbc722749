package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies tokens with a shared secret.
type HS256 struct {
	secret []byte
}

// NewHS256 returns a signer/verifier for secret.
func NewHS256(secret string) (*HS256, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &HS256{secret: []byte(secret)}, nil
}

func (h *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign serialises and signs the claims.
func (h *HS256) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.secret)
}

// Verify checks the signature and exp/nbf when present. Errors are the
// parser's own so their messages can be surfaced to clients unchanged.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	if !token.Valid || claims.UserID == "" {
		return Claims{}, ErrInvalidClaim
	}

	return claims, nil
}
