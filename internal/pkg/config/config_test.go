package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "slog", cfg.LogBackend)
	assert.Equal(t, "http.access", cfg.AccessLoggerName)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVICE_NAME", "track-your-appeal")
	t.Setenv("TEAM", "SSCS")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ACCESS_LOGGER_NAME", "express.access")
	t.Setenv("RATE_LIMIT_BURST", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "track-your-appeal", cfg.ServiceName)
	assert.Equal(t, "SSCS", cfg.Team)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "express.access", cfg.AccessLoggerName)
	assert.Equal(t, 7, cfg.RateLimitBurst)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_LogBackend(t *testing.T) {
	t.Run("logrus", func(t *testing.T) {
		t.Setenv("LOG_BACKEND", "logrus")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "logrus", cfg.LogBackend)
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("LOG_BACKEND", "zap")

		_, err := Load()
		assert.ErrorContains(t, err, "LOG_BACKEND")
	})
}
