package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carry the serialized user alongside the registered claims. The
// user fields sit at the top level of the payload ({"id","email","name"}).
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the id of the user the token was issued for
	UserID string `json:"id"`

	Email string `json:"email"`

	// Name may be empty for users created without one
	Name string `json:"name"`
}

// NewUserClaims builds claims for a user. A ttl of zero issues a token with
// no expiry.
func NewUserClaims(id, email, name string, ttl time.Duration, now time.Time) Claims {
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: id,
		Email:  email,
		Name:   name,
	}
	if ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return c
}

// Expires reports whether the token carries an exp claim.
func (c *Claims) Expires() bool {
	return c.ExpiresAt != nil
}
