package api

import (
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/V4T54L/access-logger/internal/adapter/api/handler"
	"github.com/V4T54L/access-logger/internal/adapter/api/middleware"
	"github.com/V4T54L/access-logger/internal/adapter/pii"
	"github.com/V4T54L/access-logger/internal/pkg/config"
)

// NewRouter creates the demo application router wrapped in the request id,
// access log and rate limit middleware, outermost first.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	accessLogOpts ...middleware.AccessLogOption,
) (http.Handler, error) {
	mux := http.NewServeMux()

	appHandler := handler.NewAppHandler(logger)

	// Routes
	mux.HandleFunc("GET /{$}", appHandler.Root)
	mux.HandleFunc("GET /status/{code}", appHandler.Status)
	mux.HandleFunc("GET /fail", appHandler.Fail)

	// Middleware
	piiRedactor := pii.NewRedactor(strings.Split(cfg.PIIRedactionFields, ","), logger)
	opts := append([]middleware.AccessLogOption{
		middleware.WithLoggerName(cfg.AccessLoggerName),
		middleware.WithFormatter(piiRedactor.Formatter(middleware.DefaultFormatter)),
	}, accessLogOpts...)
	accessLog, err := middleware.AccessLog(opts...)
	if err != nil {
		return nil, err
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	return middleware.RequestID()(accessLog(middleware.RateLimit(limiter)(mux))), nil
}
