package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/bankup-app-go/internal/config"
	"github.com/boddenberg/bankup-app-go/internal/handler"
	"github.com/boddenberg/bankup-app-go/internal/infra/observability"
	"github.com/boddenberg/bankup-app-go/internal/sandbox"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.SandboxPort),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("token_ttl", cfg.SandboxTokenTTL),
		zap.Duration("code_ttl", cfg.SandboxCodeTTL),
		zap.Bool("dev_codes", cfg.SandboxDevCodes),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "bankup-sandbox")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Sandbox backend ---
	sb := sandbox.New(sandbox.Options{
		Secret:   []byte(cfg.SandboxSecret),
		TokenTTL: cfg.SandboxTokenTTL,
		CodeTTL:  cfg.SandboxCodeTTL,
		DevCodes: cfg.SandboxDevCodes,
	}, metrics, logger)

	if cfg.SandboxDevCodes {
		logger.Warn("dev codes endpoint enabled, do not expose this server")
	}

	// --- Router ---
	router := handler.NewRouter(sb, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.SandboxPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.SandboxPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
