package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/internal/users/store/drivers/sqlite"
	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/aussiebroadwan/usersapi/pkg/mailx"
)

const testSecret = "test-secret"

type fakeMailer struct {
	mu   sync.Mutex
	sent []mailx.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailx.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *fakeMailer) last(t *testing.T) mailx.Message {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no email sent")
	return m.sent[len(m.sent)-1]
}

// brokenCache fails every operation.
type brokenCache struct{}

var errCacheDown = errors.New("cache down")

func (brokenCache) Get(context.Context, string) ([]byte, error)       { return nil, errCacheDown }
func (brokenCache) Set(context.Context, string, []byte) error         { return errCacheDown }
func (brokenCache) Delete(context.Context, ...string) error           { return errCacheDown }
func (brokenCache) AddToSet(context.Context, string, string) error    { return errCacheDown }
func (brokenCache) Members(context.Context, string) ([]string, error) { return nil, errCacheDown }
func (brokenCache) Ping(context.Context) error                        { return errCacheDown }
func (brokenCache) Close() error                                      { return nil }

type fixture struct {
	store  store.Store
	cache  cachex.Cache
	mailer *fakeMailer
	users  *UserService
	auth   *AuthService
	tokens *TokenService
}

func newFixture(t *testing.T, cache cachex.Cache) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	if cache == nil {
		cache = cachex.NewMemory(0)
	}

	tokens, err := NewTokenService(testSecret, 0, 0)
	require.NoError(t, err)

	mailer := &fakeMailer{}
	users := &UserService{Store: st, Cache: cache}

	return &fixture{
		store:  st,
		cache:  cache,
		mailer: mailer,
		users:  users,
		tokens: tokens,
		auth: &AuthService{
			Users:       users,
			Store:       st,
			Tokens:      tokens,
			Mailer:      mailer,
			FrontendURL: "https://app.example.com/",
		},
	}
}

func (f *fixture) create(t *testing.T, email, name, password string) domain.SerializedUser {
	t.Helper()
	u, err := f.users.Create(context.Background(), domain.CreateUserInput{Email: email, Name: name, Password: password})
	require.NoError(t, err)
	return u
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func resetTokenFrom(t *testing.T, msg mailx.Message) (id, token string) {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(msg.Body), "\n")
	link, err := url.Parse(lines[len(lines)-1])
	require.NoError(t, err)
	require.Equal(t, "/auth/reset-password", link.Path)

	return link.Query().Get("id"), link.Query().Get("access-token")
}
