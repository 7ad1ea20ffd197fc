package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/footy-tipping/internal/app"
	"github.com/riskibarqy/footy-tipping/internal/config"
	"github.com/riskibarqy/footy-tipping/internal/observability"
	"github.com/riskibarqy/footy-tipping/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	if application.Warmup.Enabled() {
		go application.Warmup.Run(ctx)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "fixture_source", cfg.FixtureSource)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exitCode := 0
	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		exitCode = 1
	}
	if err := application.Close(); err != nil {
		logger.Error("close app resources", "error", err)
	}
	if err := stopProfiling(); err != nil {
		logger.Warn("stop pyroscope", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("shutdown uptrace", "error", err)
	}

	logger.Info("http server stopped")
	_ = logger.Sync()
	os.Exit(exitCode)
}
