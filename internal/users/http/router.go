package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/usersapi/api/users" // Swagger docs
	"github.com/aussiebroadwan/usersapi/internal/users/service"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/aussiebroadwan/usersapi/pkg/httpx"
	"github.com/aussiebroadwan/usersapi/pkg/jwtx"
	"github.com/aussiebroadwan/usersapi/pkg/slogx"
	"github.com/aussiebroadwan/usersapi/pkg/validx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	validator    *validx.Validator
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	cache       cachex.Cache
	UserService *service.UserService
	AuthService *service.AuthService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	cache cachex.Cache,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		validator:    validx.New(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		cache:        cache,
		logger:       logger,
	}

	// Metrics sits innermost so the matched route pattern is visible to it.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigins),
		httpx.Metrics(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Users Service API
//	@version		0.1.0
//	@description	Users CRUD with signup, login and password reset.
//	@description
//	@description				Access tokens are HS256 JWTs carrying the user's id, email and name.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/usersapi
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:3000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService, Validator: r.validator}

	// Signup - moderate rate limit by IP
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(http.HandlerFunc(h.HandleSignup),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Credential and reset endpoints - strict, keyed by IP + email to slow brute force
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /auth/forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgotPassword),
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("POST /auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleResetPassword),
			httpx.RateLimitByIPAndBodyField(httpx.StrictLimit, "id"),
		),
	)

	// Authenticated endpoint - lenient rate limit by user
	r.Mux.Handle("GET /auth/profile",
		httpx.Chain(http.HandlerFunc(h.HandleProfile),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService, Validator: r.validator}

	write := httpx.RateLimitByIP(httpx.ModerateLimit)
	read := httpx.RateLimitByIP(httpx.LenientLimit)

	r.Mux.Handle("POST /users", httpx.Chain(http.HandlerFunc(h.HandleCreate), write))
	r.Mux.Handle("PUT /users/{id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), write))
	r.Mux.Handle("DELETE /users/{id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), write))

	r.Mux.Handle("GET /users", httpx.Chain(http.HandlerFunc(h.HandleList), read))
	r.Mux.Handle("GET /users/{id}", httpx.Chain(http.HandlerFunc(h.HandleGet), read))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	h := &HealthHandler{
		Started: r.startTime,
		Version: r.buildVersion,
		Store:   r.store,
		Cache:   r.cache,
	}
	r.Mux.Handle("GET /livez",
		httpx.Chain(http.HandlerFunc(h.HandleLivez),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(http.HandlerFunc(h.HandleReadyz),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
