package service

import (
	"time"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/pkg/jwtx"
)

// TokenService issues and checks HS256 access tokens. A secret override
// signs with a derived one-time secret instead of the process secret.
type TokenService struct {
	Secret    string
	AccessTTL time.Duration // 0 issues tokens without exp
	ResetTTL  time.Duration // applies to tokens signed with an override

	// Now is used for iat/exp. Defaults to time.Now.
	Now func() time.Time

	key *jwtx.HS256
}

// NewTokenService validates the secret and builds the default verifier.
func NewTokenService(secret string, accessTTL, resetTTL time.Duration) (*TokenService, error) {
	key, err := jwtx.NewHS256(secret)
	if err != nil {
		return nil, err
	}
	return &TokenService{
		Secret:    secret,
		AccessTTL: accessTTL,
		ResetTTL:  resetTTL,
		key:       key,
	}, nil
}

// Sign issues a token for user. An empty secretOverride uses the default
// secret and AccessTTL.
func (s *TokenService) Sign(user domain.SerializedUser, secretOverride string) (string, error) {
	var signer jwtx.Signer = s.key
	ttl := s.AccessTTL
	if secretOverride != "" {
		key, err := jwtx.NewHS256(secretOverride)
		if err != nil {
			return "", err
		}
		signer, ttl = key, s.ResetTTL
	}

	return signer.Sign(jwtx.NewUserClaims(user.ID, user.Email, user.Name, ttl, s.now()))
}

// Verify checks token against the default secret or secretOverride. Any
// failure is returned as *TokenError.
func (s *TokenService) Verify(token, secretOverride string) (jwtx.Claims, error) {
	var verifier jwtx.Verifier = s.key
	if secretOverride != "" {
		key, err := jwtx.NewHS256(secretOverride)
		if err != nil {
			return jwtx.Claims{}, &TokenError{Cause: err}
		}
		verifier = key
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		return jwtx.Claims{}, &TokenError{Cause: err}
	}
	return claims, nil
}

// ResetSecret derives the one-time secret for a password reset. The token
// stops verifying as soon as the password hash changes.
func (s *TokenService) ResetSecret(passwordHash string) string {
	return s.Secret + "_" + passwordHash
}

// Verifier returns the verifier bound to the default secret.
func (s *TokenService) Verifier() jwtx.Verifier {
	return s.key
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
