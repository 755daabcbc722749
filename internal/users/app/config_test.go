package app

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/usersapi/pkg/cachex"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"JWT_SECRET_KEY", "ENV", "PORT", "DATABASE_DRIVER", "CACHE_HOST",
		"MAILGUN_SMTP_SERVER", "EMAIL_HOSTNAME", "CORS_ALLOWED_ORIGINS", "JWT_EXPIRES_IN", "CACHE_MAX_ENTRIES",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, devSecret, cfg.JWTSecret)
	require.Equal(t, 3000, cfg.Port)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "users.db", cfg.DatabaseFile)
	require.Empty(t, cfg.Cache.Addr)
	require.Equal(t, 60*time.Second, cfg.Cache.TTL)
	require.Equal(t, cachex.DefaultMemoryEntries, cfg.CacheMaxEntries)
	require.Empty(t, cfg.SMTP.Host)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	require.Zero(t, cfg.AccessTokenTTL)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("JWT_EXPIRES_IN", "3600")
	t.Setenv("RESET_TOKEN_EXPIRES_IN", "15m")
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/users")
	t.Setenv("CACHE_HOST", "redis")
	t.Setenv("CACHE_PORT", "6380")
	t.Setenv("EMAIL_HOSTNAME", "smtp.example.com")
	t.Setenv("MAILGUN_SMTP_SERVER", "smtp.mailgun.org")
	t.Setenv("EMAIL_PORT", "2525")
	t.Setenv("EMAIL_FROM", "noreply@example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg := LoadConfig()

	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.Equal(t, time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 15*time.Minute, cfg.ResetTokenTTL)
	require.Equal(t, 8081, cfg.Port)
	require.Equal(t, "redis:6380", cfg.Cache.Addr)
	require.Equal(t, "smtp.mailgun.org", cfg.SMTP.Host)
	require.Equal(t, 2525, cfg.SMTP.Port)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	require.False(t, cfg.IsDev())
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := Config{Env: "production", JWTSecret: "s3cret", DatabaseDriver: "sqlite"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid"},
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET_KEY is required",
		},
		{
			name:    "dev secret in production",
			mutate:  func(c *Config) { c.JWTSecret = devSecret },
			wantErr: "development secret",
		},
		{
			name:    "postgres without url",
			mutate:  func(c *Config) { c.DatabaseDriver = "postgres" },
			wantErr: "DATABASE_URL is required",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.DatabaseDriver = "mysql" },
			wantErr: "DATABASE_DRIVER",
		},
		{
			name:    "smtp without sender",
			mutate:  func(c *Config) { c.SMTP.Host = "smtp.example.com" },
			wantErr: "EMAIL_FROM is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
