package usersdk

import (
	"context"
	"net/http"
)

// Session is an authenticated user session. Tokens are not refreshed; when
// the access token expires the caller logs in again.
type Session struct {
	client      *SDKClient
	User        User
	AccessToken string
}

func (c *SDKClient) newSession(resp SessionResponse) *Session {
	return &Session{
		client:      c,
		User:        resp.User,
		AccessToken: resp.AccessToken,
	}
}

// NewSession wraps an access token obtained elsewhere.
func (c *SDKClient) NewSession(accessToken string) *Session {
	return &Session{client: c, AccessToken: accessToken}
}

// Profile returns the user the access token was issued for and refreshes
// s.User with it.
func (s *Session) Profile(ctx context.Context) (*User, error) {
	var out ProfileResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/auth/profile", nil, s.AccessToken, &out, http.StatusOK); err != nil {
		return nil, err
	}
	s.User = out.User
	return &out.User, nil
}
