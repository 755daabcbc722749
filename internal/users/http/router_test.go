package http_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	usershttp "github.com/aussiebroadwan/usersapi/internal/users/http"
	"github.com/aussiebroadwan/usersapi/internal/users/service"
	"github.com/aussiebroadwan/usersapi/internal/users/store/drivers/sqlite"
	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/aussiebroadwan/usersapi/pkg/mailx"
	"github.com/aussiebroadwan/usersapi/pkg/usersdk"
)

const testPassword = "s3cret-pass"

type outbox struct {
	mu   sync.Mutex
	sent []mailx.Message
}

func (o *outbox) Send(_ context.Context, msg mailx.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

// resetLink returns the id and token from the most recent reset email.
func (o *outbox) resetLink(t *testing.T) (id, token string) {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent, "no email sent")

	body := strings.TrimSpace(o.sent[len(o.sent)-1].Body)
	link, err := url.Parse(body[strings.LastIndex(body, "\n")+1:])
	require.NoError(t, err)
	return link.Query().Get("id"), link.Query().Get("access-token")
}

type failingCache struct{ cachex.Cache }

func (failingCache) Ping(context.Context) error { return errors.New("connection refused") }

type testServer struct {
	client *usersdk.SDKClient
	url    string
	users  *service.UserService
	mail   *outbox
}

func newTestServer(t *testing.T, cache cachex.Cache) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	if cache == nil {
		cache = cachex.NewMemory(0)
	}

	tokens, err := service.NewTokenService("test-secret", 0, 0)
	require.NoError(t, err)

	mail := &outbox{}
	users := &service.UserService{Store: st, Cache: cache}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := usershttp.NewRouter(tokens.Verifier(), "test", st, cache, logger, []string{"*"})
	router.UserService = users
	router.AuthService = &service.AuthService{
		Users:       users,
		Store:       st,
		Tokens:      tokens,
		Mailer:      mail,
		FrontendURL: "http://frontend.test",
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		client: usersdk.NewSDKClient(srv.URL),
		url:    srv.URL,
		users:  users,
		mail:   mail,
	}
}

func (s *testServer) signup(t *testing.T, email, name string) *usersdk.Session {
	t.Helper()
	session, err := s.client.Signup(t.Context(), usersdk.SignupRequest{Email: email, Name: name, Password: testPassword})
	require.NoError(t, err)
	return session
}

// requireAPIError asserts err is an *APIError with the given status, first
// message and reason.
func requireAPIError(t *testing.T, err error, status int, message, reason string) *usersdk.APIError {
	t.Helper()
	var apiErr *usersdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	if message != "" {
		require.Equal(t, message, apiErr.Message())
	}
	require.Equal(t, reason, apiErr.Reason)
	return apiErr
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("ready", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, nil)

		live, err := srv.client.Livez(t.Context())
		require.NoError(t, err)
		require.Equal(t, "ok", live.Status)
		require.Equal(t, "test", live.Version)
		require.Equal(t, "sqlite", live.Database)
		require.Equal(t, "memory", live.Cache)
		require.Nil(t, live.Checks)

		ready, err := srv.client.Readyz(t.Context())
		require.NoError(t, err)
		require.Equal(t, "ok", ready.Status)
		require.Equal(t, &usersdk.HealthChecks{Database: "ok", Cache: "ok"}, ready.Checks)
	})

	t.Run("cache down", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, failingCache{Cache: cachex.NewMemory(0)})

		ready, err := srv.client.Readyz(t.Context())
		require.Error(t, err)
		require.Equal(t, "degraded", ready.Status)
		require.Equal(t, "ok", ready.Checks.Database)
		require.Equal(t, "error: connection refused", ready.Checks.Cache)
		require.Equal(t, "unknown", ready.Cache)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	_, err := srv.client.Livez(t.Context())
	require.NoError(t, err)

	resp, err := http.Get(srv.url + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `usersapi_http_requests_total{method="GET",path="/livez",status="200"}`)
}

func TestRequestIDEchoed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.url+"/livez", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
}

func TestSwaggerServed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.url + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"/auth/reset-password"`)
}
