package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/boddenberg/bankup-app-go/internal/cli"
	"github.com/boddenberg/bankup-app-go/internal/config"
	"github.com/boddenberg/bankup-app-go/internal/infra/cache"
	"github.com/boddenberg/bankup-app-go/internal/infra/client"
	"github.com/boddenberg/bankup-app-go/internal/infra/observability"
	"github.com/boddenberg/bankup-app-go/internal/infra/resilience"
	"github.com/boddenberg/bankup-app-go/internal/infra/session"
	"github.com/boddenberg/bankup-app-go/internal/service"

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
		zap.String("api_url", cfg.APIURL),
		zap.String("session_db", cfg.SessionDB),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "bankup-app")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Session storage ---
	store, err := session.Open(ctx, cfg.SessionDB)
	if err != nil {
		logger.Fatal("failed to open session storage", zap.Error(err))
	}
	defer store.Close()

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	viewCache := cache.New[any](cfg.CacheTTL)
	defer viewCache.Close()

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("bankup-api", client.IsSuccessful)

	// --- Client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	api := client.New(httpClient, cfg.APIURL, cb, resilienceCfg, store, metrics, logger)

	// --- Services ---
	app := cli.NewApp(cli.Services{
		Auth:          service.NewAuthService(api, store, logger),
		Profile:       service.NewProfileService(api, store, viewCache, metrics, logger),
		Payers:        service.NewPayerService(api, viewCache, metrics, logger),
		Charges:       service.NewChargeService(api, logger),
		Dashboard:     service.NewDashboardService(api, api, cfg.UpcomingDays, logger),
		Notifications: service.NewNotificationService(api),
		Stats:         metrics.Snapshot,
		UpcomingDays:  cfg.UpcomingDays,
	}, os.Stdin, os.Stdout, logger)

	app.Run(ctx)
}
