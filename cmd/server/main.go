package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/V4T54L/access-logger/internal/adapter/api"
	"github.com/V4T54L/access-logger/internal/adapter/metrics"
	"github.com/V4T54L/access-logger/internal/domain"
	"github.com/V4T54L/access-logger/internal/pkg/config"
	"github.com/V4T54L/access-logger/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)

	// --- Logger Registry ---
	registryCfg := logger.Config{
		Microservice: cfg.ServiceName,
		Team:         cfg.Team,
		Environment:  cfg.Environment,
		Handler:      log.Handler(),
	}
	logger.Configure(registryCfg)

	m := metrics.NewAccessMetrics(prometheus.DefaultRegisterer)
	var accessLogger domain.Logger
	switch cfg.LogBackend {
	case "logrus":
		l := logger.NewLogrus(cfg.LogLevel, cfg.LogFormat, os.Stdout)
		accessLogger = logger.NewLogrusChannel(l, registryCfg, cfg.AccessLoggerName)
	default:
		accessLogger, err = logger.Get(cfg.AccessLoggerName)
		if err != nil {
			log.Error("failed to resolve access logger", "error", err)
			os.Exit(1)
		}
	}
	logger.Register(cfg.AccessLoggerName, m.Instrument(accessLogger))

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Start Admin and Metrics Server ---
	adminServer := &http.Server{
		Addr:    cfg.AdminAddr,
		Handler: api.NewAdminRouter(prometheus.DefaultGatherer, log),
	}

	go func() {
		log.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Initialize App Server ---
	router, err := api.NewRouter(cfg, log)
	if err != nil {
		log.Error("failed to build router", "error", err)
		os.Exit(1)
	}
	appServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	go func() {
		log.Info("starting app server", "addr", appServer.Addr, "access_logger", cfg.AccessLoggerName, "log_backend", cfg.LogBackend)
		if err := appServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("app server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	log.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		log.Error("admin server shutdown failed", "error", err)
	}
	if err := appServer.Shutdown(shutdownCtx); err != nil {
		log.Error("app server shutdown failed", "error", err)
	}

	log.Info("servers shut down gracefully")
}
