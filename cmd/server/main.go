package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ricirt/api-stub/internal/api"
	"github.com/ricirt/api-stub/internal/config"
	"github.com/ricirt/api-stub/internal/logging"
	"github.com/ricirt/api-stub/internal/metrics"
	"github.com/ricirt/api-stub/internal/ratelimiter"
	"github.com/ricirt/api-stub/internal/service"
)

func main() {
	boot, err := logging.Bootstrap()
	if err != nil {
		panic(err)
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil {
		boot.Debug("no .env file loaded", zap.Error(err))
	}

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		boot.Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	examples := service.DefaultExamples()
	svc := service.NewHealthService(examples, logger, m.HealthObserver())
	limiter := ratelimiter.New(cfg.RateLimit, cfg.RateBurst, cfg.RateIdleTTL)

	// Context for background goroutines; cancelled on shutdown signal.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go limiter.Run(ctx, cfg.SweepInterval)

	// ---- HTTP server ----
	router := api.NewRouter(svc, limiter, m, reg, cfg.AllowedOrigins, cfg.TrustedProxies, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Int("examples", examples.Len()),
			zap.Bool("rate_limited", limiter.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	cancel()
	logger.Info("server stopped cleanly")
}
