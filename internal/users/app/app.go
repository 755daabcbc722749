package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/usersapi/internal/users/http"
	"github.com/aussiebroadwan/usersapi/internal/users/service"
	"github.com/aussiebroadwan/usersapi/internal/users/store"
	"github.com/aussiebroadwan/usersapi/internal/users/store/drivers/postgres"
	"github.com/aussiebroadwan/usersapi/internal/users/store/drivers/sqlite"
	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/aussiebroadwan/usersapi/pkg/mailx"
	"github.com/aussiebroadwan/usersapi/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// devSeedCount matches the size of the development data set.
const devSeedCount = 200

// Application encapsulates the users service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	cache  cachex.Cache
	mailer mailx.Sender

	// Services
	tokenService        *service.TokenService
	userService         *service.UserService
	authService         *service.AuthService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "users-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initMailer(); err != nil {
		_ = app.cache.Close()
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.cache.Close()
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	if cfg.Env == "development" {
		n, err := Seed(context.Background(), app.db, devSeedCount, false)
		if err != nil {
			app.logger.Warn("development seed failed", "error", err)
		} else if n > 0 {
			app.logger.Info("development data seeded", "users", n)
		}
	}

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("users service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down users service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing cache", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("users service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	db, err := OpenStore(context.Background(), app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// OpenStore opens the store selected by cfg.DatabaseDriver without migrating it.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	if cfg.DatabaseDriver == "postgres" {
		db, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// initCache connects to Redis when configured and falls back to memory otherwise
func (app *Application) initCache() error {
	var c cachex.Cache
	if app.cfg.Cache.Addr == "" {
		c = cachex.NewMemorySized(app.cfg.CacheMaxEntries, app.cfg.Cache.TTL)
		app.logger.Info("using in-process cache", "max_entries", app.cfg.CacheMaxEntries)
	} else {
		r, err := cachex.NewRedis(app.cfg.Cache)
		if err != nil {
			return fmt.Errorf("failed to connect to cache: %w", err)
		}
		c = r
		app.logger.Info("using redis cache", "addr", app.cfg.Cache.Addr)
	}

	app.cache = cachex.Instrument(c)
	return nil
}

// initMailer sends through SMTP when configured and logs messages otherwise
func (app *Application) initMailer() error {
	if app.cfg.SMTP.Host == "" {
		app.mailer = mailx.NewLogSender(app.logger)
		app.logger.Warn("no SMTP host configured, emails will only be logged")
		return nil
	}

	smtp, err := mailx.NewSMTP(app.cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to configure mailer: %w", err)
	}
	app.mailer = smtp
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	tokens, err := service.NewTokenService(app.cfg.JWTSecret, app.cfg.AccessTokenTTL, app.cfg.ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.tokenService = tokens

	app.userService = &service.UserService{
		Store: app.db,
		Cache: app.cache,
	}
	app.authService = &service.AuthService{
		Users:       app.userService,
		Store:       app.db,
		Tokens:      app.tokenService,
		Mailer:      app.mailer,
		FrontendURL: app.cfg.FrontendURL,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.SoftDeleteRetention,
	)
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokenService.Verifier(),
		BuildVersion,
		app.db,
		app.cache,
		app.logger,
		app.cfg.CORSAllowedOrigins,
	)

	// Wire services to router
	router.UserService = app.userService
	router.AuthService = app.authService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
