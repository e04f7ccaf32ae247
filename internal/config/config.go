package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tasktracker/internal/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DevSecretKey is the fallback signing key. Anything signed with it is forgeable.
const DevSecretKey = "dev"

type Config struct {
	AppPort     string `env:"APP_PORT" env-default:"8080"`
	AppVersion  string `env:"APP_VERSION" env-default:"dev"`
	DatabaseURL string `env:"DATABASE_URL" env-default:"sqlite://instance/tasktracker.sqlite"`

	// Session cookie
	SecretKey     string        `env:"SECRET_KEY" env-default:"dev"`
	SessionCookie string        `env:"SESSION_COOKIE_NAME" env-default:"session"`
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"168h"`
	SessionSecure bool          `env:"SESSION_COOKIE_SECURE" env-default:"false"`

	// Redis backs the session revocation list; empty addr disables it.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	LogJSON  bool   `env:"LOG_JSON" env-default:"false"`

	// CORS: only this origin is echoed back; empty means same-origin only.
	AllowedOrigin string `env:"ALLOWED_ORIGIN"`
}

// Parse reads the process environment into a Config.
func Parse() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY is empty")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	return &cfg, nil
}

// Load reads .env (if present) and the environment, exiting on invalid config.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := Parse()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	if cfg.SecretKey == DevSecretKey {
		logger.Warn("SECRET_KEY is the development default; sessions can be forged")
	}

	return cfg
}
