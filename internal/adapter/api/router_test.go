package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/V4T54L/access-logger/internal/adapter/api/middleware"
	"github.com/V4T54L/access-logger/internal/adapter/metrics"
	"github.com/V4T54L/access-logger/internal/domain/mocks"
	"github.com/V4T54L/access-logger/internal/pkg/config"
	"github.com/V4T54L/access-logger/internal/pkg/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		AccessLoggerName:   "express.access",
		PIIRedactionFields: "token",
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRouter_AccessLogFlow(t *testing.T) {
	reg := logger.NewRegistry()
	reg.Configure(logger.Config{Microservice: "track-your-appeal", Team: "SSCS", Environment: "production"})
	accessLogger := &mocks.MockLogger{}
	reg.Register("express.access", accessLogger)

	router, err := NewRouter(testConfig(), discardLogger(), middleware.WithRegistry(reg))
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	defer srv.Close()

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/", http.StatusOK, `"GET / HTTP/1.1" 200`},
		{"/status/400", http.StatusBadRequest, `"GET /status/400 HTTP/1.1" 400`},
		{"/status/500", http.StatusInternalServerError, `"GET /status/500 HTTP/1.1" 500`},
		{"/fail", http.StatusInternalServerError, `"GET /fail HTTP/1.1" 500`},
		{"/nope", http.StatusNotFound, `"GET /nope HTTP/1.1" 404`},
	}

	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tt.status, resp.StatusCode, tt.path)
		assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	}

	require.Eventually(t, func() bool { return accessLogger.Total() == len(tests) }, time.Second, 10*time.Millisecond)

	assert.Len(t, accessLogger.Infos(), 1)
	assert.Len(t, accessLogger.Warns(), 2)
	assert.Len(t, accessLogger.Errors(), 2)
	assert.Equal(t, `"GET / HTTP/1.1" 200`, accessLogger.Infos()[0].Message)
	assert.NotEmpty(t, accessLogger.Infos()[0].RequestID)

	var messages []string
	for _, rec := range append(accessLogger.Warns(), accessLogger.Errors()...) {
		messages = append(messages, rec.Message)
	}
	for _, tt := range tests[1:] {
		assert.Contains(t, messages, tt.message)
	}
}

func TestRouter_RateLimitedRequestsAreLogged(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	accessLogger := &mocks.MockLogger{}

	router, err := NewRouter(cfg, discardLogger(), middleware.WithLogger(accessLogger))
	require.NoError(t, err)

	for range 2 {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	assert.Len(t, accessLogger.Infos(), 1)
	require.Len(t, accessLogger.Warns(), 1)
	assert.Equal(t, http.StatusTooManyRequests, accessLogger.Warns()[0].ResponseCode)
}

func TestRouter_RedactsQueryInMessage(t *testing.T) {
	accessLogger := &mocks.MockLogger{}
	router, err := NewRouter(testConfig(), discardLogger(), middleware.WithLogger(accessLogger))
	require.NoError(t, err)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status/401?token=abc&page=1", nil))

	require.Len(t, accessLogger.Warns(), 1)
	assert.Equal(t, `"GET /status/401?token=[REDACTED]&page=1 HTTP/1.1" 401`, accessLogger.Warns()[0].Message)
}

func TestRouter_RegistryNotConfigured(t *testing.T) {
	_, err := NewRouter(testConfig(), discardLogger(), middleware.WithRegistry(logger.NewRegistry()))
	assert.ErrorIs(t, err, middleware.ErrLoggerUnavailable)
}

func TestAdminRouter_Metrics(t *testing.T) {
	promReg := prometheus.NewRegistry()
	m := metrics.NewAccessMetrics(promReg)

	router, err := NewRouter(testConfig(), discardLogger(), middleware.WithLogger(m.Instrument(&mocks.MockLogger{})))
	require.NoError(t, err)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status/503", nil))

	admin := NewAdminRouter(promReg, discardLogger())

	rr := httptest.NewRecorder()
	admin.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `access_log_records_total{code_class="5xx",severity="error"} 1`)

	rr = httptest.NewRecorder()
	admin.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
