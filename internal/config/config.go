package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Session  SessionConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DatabaseConfig contains the database connection settings. URL selects the
// driver: postgres:// and postgresql:// URLs and keyword DSNs containing
// host= open Postgres, anything else sqlite.
type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"25"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"DATABASE_CONN_MAX_IDLE_TIME" envDefault:"2m"`
	UseMock         bool          `env:"DATABASE_USE_MOCK"`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// SessionConfig configures the cookie that carries flash messages.
type SessionConfig struct {
	Lifetime     time.Duration `env:"SESSION_LIFETIME" envDefault:"12h"`
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"bakery_session"`
	CookieDomain string        `env:"SESSION_COOKIE_DOMAIN"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Server.Addr = firstNonEmpty(
		cfg.Server.Addr,
		os.Getenv("ADDR"),
		":8080",
	)

	cfg.Database.URL = firstNonEmpty(
		cfg.Database.URL,
		os.Getenv("DB_URL"),
		"",
	)

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if strings.TrimSpace(cfg.Database.URL) == "" && !cfg.Database.UseMock {
		return Config{}, fmt.Errorf("database URL must be set unless DATABASE_USE_MOCK is enabled")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
