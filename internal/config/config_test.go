package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, "sqlite://instance/tasktracker.sqlite", cfg.DatabaseURL)
	require.Equal(t, DevSecretKey, cfg.SecretKey)
	require.Equal(t, "session", cfg.SessionCookie)
	require.Equal(t, 168*time.Hour, cfg.SessionTTL)
	require.False(t, cfg.SessionSecure)
	require.Empty(t, cfg.RedisAddr)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/tasks")
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_JSON", "true")

	cfg, err := Parse()
	require.NoError(t, err)

	require.Equal(t, "9090", cfg.AppPort)
	require.Equal(t, "postgres://u:p@localhost:5432/tasks", cfg.DatabaseURL)
	require.Equal(t, "s3cret", cfg.SecretKey)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.True(t, cfg.SessionSecure)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 3, cfg.RedisDB)
	require.True(t, cfg.LogJSON)
}

func TestParse_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "0s")

	_, err := Parse()
	require.Error(t, err)
}

func TestParse_RejectsBadDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")

	_, err := Parse()
	require.Error(t, err)
}
