package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sima8766/iran-transitional-leader-email-app/internal/api"
	"github.com/sima8766/iran-transitional-leader-email-app/internal/config"
	"github.com/sima8766/iran-transitional-leader-email-app/internal/csvparser"
	"github.com/sima8766/iran-transitional-leader-email-app/internal/email"
	"github.com/sima8766/iran-transitional-leader-email-app/internal/metrics"
	"github.com/sima8766/iran-transitional-leader-email-app/internal/session"
)

func main() {

	// ------------------------------------------------
	// Logger
	// ------------------------------------------------
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// ------------------------------------------------
	// Config
	// ------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ------------------------------------------------
	// Root Context + Shutdown
	// ------------------------------------------------
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	// ------------------------------------------------
	// Templates
	// ------------------------------------------------
	pool, err := email.LoadPool(cfg.TemplatesFile)
	if err != nil {
		logger.Fatal("failed to load templates", zap.Error(err))
	}
	logger.Info("templates loaded",
		zap.Int("bodies", pool.Size()),
		zap.Int("subjects", len(pool.Subjects)),
	)

	// ------------------------------------------------
	// Recipients (fail fast, sessions load their own copy)
	// ------------------------------------------------
	recipients, err := csvparser.Load(cfg.RecipientsFile)
	if err != nil {
		logger.Fatal("failed to load recipients",
			zap.String("path", cfg.RecipientsFile),
			zap.Error(err),
		)
	}

	// ------------------------------------------------
	// Metrics
	// ------------------------------------------------
	metrics.Init()
	metrics.RecipientsLoaded.Set(float64(len(recipients)))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	metricsServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: metricsMux,
	}

	go func() {
		logger.Info("metrics server started", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("metrics server error", zap.Error(err))
		}
	}()

	// ------------------------------------------------
	// Sessions
	// ------------------------------------------------
	sessions := session.NewStore(
		cfg.SessionTTL,
		session.NewFactory(func() ([]string, error) {
			return csvparser.Load(cfg.RecipientsFile)
		}, pool),
	)

	// ------------------------------------------------
	// HTTP API Server
	// ------------------------------------------------
	apiHandler := &api.Handler{
		Sessions: sessions,
		Limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
		Validate: validator.New(validator.WithRequiredStructEnabled()),
		Log:      logger,
	}

	apiMux := http.NewServeMux()
	apiHandler.Routes(apiMux)

	apiServer := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: apiMux,
	}

	go func() {
		logger.Info("api server started",
			zap.String("port", cfg.APIPort),
			zap.Int("recipients", len(recipients)),
		)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("api server error", zap.Error(err))
		}
	}()

	// ------------------------------------------------
	// Wait for shutdown
	// ------------------------------------------------
	<-ctx.Done()

	logger.Info("shutting down services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", zap.Error(err))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown failed", zap.Error(err))
	}

	logger.Info("application shutdown complete")
}
