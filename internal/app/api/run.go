package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	storefrontserver "github.com/Apurer/exotica-pets/go"
	cartcatalog "github.com/Apurer/exotica-pets/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/Apurer/exotica-pets/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/exotica-pets/internal/domains/cart/adapters/observability"
	cartapp "github.com/Apurer/exotica-pets/internal/domains/cart/application"
	catalogobs "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/exotica-pets/internal/domains/catalog/application"
	platformobservability "github.com/Apurer/exotica-pets/internal/platform/observability"
)

// Run boots the storefront HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.ConfigFromEnv(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store := buildCatalogStore(ctx, cfg, logger)
	defer store.cleanup()
	catalogService := catalogobs.New(
		catalogapp.NewService(store.repo, catalogapp.WithImportLedger(store.ledger)),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	if err := seedCatalog(ctx, store, catalogService, cfg, logger); err != nil {
		logger.Warn("catalog seed skipped", slog.String("error", err.Error()))
	}
	var temporalClient client.Client
	if store.backend == backendPostgres {
		if c, err := DialTemporal(cfg, instruments); err != nil {
			logger.Warn("Temporal workflows unavailable", slog.String("error", err.Error()))
		} else {
			defer c.Close()
			temporalClient = c
		}
	}
	catalogWorkflows := catalogOrchestrator(store, catalogService, temporalClient, logger)

	cartRepo := cartmemory.NewRepository()
	cartService := cartobs.New(
		cartapp.NewService(cartRepo, cartcatalog.NewReader(store.repo)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	registry := platformobservability.NewRegistry()
	if err := platformobservability.RegisterActiveCarts(registry, cartRepo.Count, logger); err != nil {
		return fmt.Errorf("failed to register cart metrics: %w", err)
	}

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI: storefrontserver.NewCatalogAPI(catalogService, catalogWorkflows),
		CartAPI:    storefrontserver.NewCartAPI(cartService),
		Metrics:    platformobservability.MetricsHandler(registry),
		Logger:     logger,
	}
	engine := gin.New()
	engine.Use(gin.Logger(), otelgin.Middleware(serviceName))
	router := storefrontserver.NewRouterWithGinEngine(engine, handlers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go purgeIdleCarts(runCtx, cartService, cfg.CartPurgeInterval, cfg.CartIdleTTL, logger)

	server := &http.Server{Addr: cfg.Addr(), Handler: router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront API listening", slog.String("addr", server.Addr), slog.String("catalog", store.backend))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("storefront API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		logger.Info("shutting down storefront API")
		return server.Shutdown(shutdownCtx)
	}
}

// DialTemporal connects to Temporal with tracing and the process logger attached.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
