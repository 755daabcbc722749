package app

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/aussiebroadwan/usersapi/pkg/mailx"
)

const devSecret = "dev-secret"

type Config struct {
	JWTSecret      string        // Required outside dev: HS256 signing secret
	AccessTokenTTL time.Duration // Optional: access token lifetime, 0 means no expiry (default: 0)
	ResetTokenTTL  time.Duration // Optional: reset token lifetime, 0 means no expiry (default: 0)
	FrontendURL    string        // Optional: base URL used in password reset links

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./users.db)
	DatabaseURL    string // Required for postgres: connection string

	Cache           cachex.RedisConfig // Optional: empty Addr selects the in-process cache
	CacheMaxEntries int                // Optional: in-process cache size bound, 0 is unbounded (default: 10000)
	SMTP            mailx.SMTPConfig   // Optional: empty Host logs emails instead of sending them

	CORSAllowedOrigins []string // Optional: allowed origins (default: *)

	Env                  string        // Environment (dev, development, staging, production) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 3000)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	SoftDeleteRetention  time.Duration // Purge soft deleted users older than this, 0 disables (default: 0)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		AccessTokenTTL: getEnvDurationOrDefault("JWT_EXPIRES_IN", 0),
		ResetTokenTTL:  getEnvDurationOrDefault("RESET_TOKEN_EXPIRES_IN", 0),
		FrontendURL:    os.Getenv("FRONTEND_APP_URL"),

		DatabaseDriver: getEnvOrDefault("DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("DATABASE_FILE", "users.db"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),

		Cache: cachex.RedisConfig{
			Password: os.Getenv("CACHE_PASSWORD"),
			DB:       getEnvIntOrDefault("CACHE_DB", 0),
			TTL:      getEnvDurationOrDefault("CACHE_TTL", 60*time.Second),
		},
		CacheMaxEntries: getEnvIntOrDefault("CACHE_MAX_ENTRIES", cachex.DefaultMemoryEntries),

		// The Mailgun variables win when both are set, as in the existing deployment.
		SMTP: mailx.SMTPConfig{
			Host:     firstEnv("MAILGUN_SMTP_SERVER", "EMAIL_HOSTNAME"),
			Port:     getEnvIntOrDefault("MAILGUN_SMTP_PORT", getEnvIntOrDefault("EMAIL_PORT", 587)),
			Username: firstEnv("MAILGUN_SMTP_LOGIN", "EMAIL_USERNAME"),
			Password: firstEnv("MAILGUN_SMTP_PASSWORD", "EMAIL_PASSWORD"),
			From:     os.Getenv("EMAIL_FROM"),
		},

		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 3000),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		SoftDeleteRetention:  getEnvDurationOrDefault("SOFT_DELETE_RETENTION", 0),
	}

	if host := os.Getenv("CACHE_HOST"); host != "" {
		cfg.Cache.Addr = host + ":" + getEnvOrDefault("CACHE_PORT", "6379")
	}

	if cfg.JWTSecret == "" && cfg.IsDev() {
		cfg.JWTSecret = devSecret
	}

	return cfg
}

// IsDev reports whether the service runs in a local development setup.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.JWTSecret == devSecret && !c.IsDev() {
		errs = append(errs, errors.New("JWT_SECRET_KEY must not use the development secret outside dev"))
	}

	switch c.DatabaseDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, errors.New("DATABASE_DRIVER must be sqlite or postgres"))
	}

	if c.SMTP.Host != "" && c.SMTP.From == "" {
		errs = append(errs, errors.New("EMAIL_FROM is required when SMTP is configured"))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds, as in the JWT expiresIn convention
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
