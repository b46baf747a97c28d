package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json or text
	// Backend for the access log channel: slog or logrus.
	LogBackend string `env:"LOG_BACKEND" envDefault:"slog"`

	// Static fields attached to every registry logger.
	ServiceName string `env:"SERVICE_NAME" envDefault:"access-logger"`
	Team        string `env:"TEAM" envDefault:"platform"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	AccessLoggerName string        `env:"ACCESS_LOGGER_NAME" envDefault:"http.access"`
	ServerAddr       string        `env:"SERVER_ADDR" envDefault:":8080"`
	AdminAddr        string        `env:"ADMIN_ADDR" envDefault:":9091"`
	RateLimitRPS     float64       `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst   int           `env:"RATE_LIMIT_BURST" envDefault:"100"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Query parameters whose values are masked in access log lines.
	PIIRedactionFields string `env:"PII_REDACTION_FIELDS" envDefault:"password,token,access_token,api_key,email"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	switch cfg.LogBackend {
	case "slog", "logrus":
	default:
		return nil, fmt.Errorf("invalid LOG_BACKEND %q: want slog or logrus", cfg.LogBackend)
	}

	return cfg, nil
}
