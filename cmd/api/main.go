package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/feedback-sentiment/config"
	"github.com/spacesedan/feedback-sentiment/internal/analyzer"
	"github.com/spacesedan/feedback-sentiment/internal/clients"
	"github.com/spacesedan/feedback-sentiment/internal/handlers"
	"github.com/spacesedan/feedback-sentiment/internal/logging"
	"github.com/spacesedan/feedback-sentiment/internal/monitoring"
	"github.com/spacesedan/feedback-sentiment/internal/sentiment"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	logging.InitLogger(cfg.LogLevel)
	if err != nil {
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm := clients.NewOpenAIClient(cfg)
	svc := analyzer.NewService(llm, sentiment.FallbackFor(cfg.FallbackMode))

	var upstreamHealthy *atomic.Bool
	if cfg.HealthcheckInterval > 0 {
		upstreamHealthy = &atomic.Bool{}
		go monitoring.MonitorUpstreamHealth(ctx, llm, cfg.HealthcheckInterval, upstreamHealthy)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewHTTPHandler(svc, upstreamHealthy).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
		}
	}()

	slog.Info("[Main] Feedback sentiment API listening",
		slog.String("addr", server.Addr),
		slog.String("env", cfg.Env),
		slog.String("fallback", cfg.FallbackMode))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("[Main] Server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	<-shutdownDone
	slog.Info("[Main] Server stopped")
}
