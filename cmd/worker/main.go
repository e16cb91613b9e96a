package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/exotica-pets/internal/app/api"
	catalogobs "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/exotica-pets/internal/domains/catalog/application"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	catalogactivities "github.com/Apurer/exotica-pets/internal/durable/temporal/activities/catalog"
	catalogworkflows "github.com/Apurer/exotica-pets/internal/durable/temporal/workflows/catalog"
	"github.com/Apurer/exotica-pets/internal/platform/migrations"
	platformobservability "github.com/Apurer/exotica-pets/internal/platform/observability"
	platformpostgres "github.com/Apurer/exotica-pets/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.ConfigFromEnv(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, ledger, cleanupRepo, err := buildCatalogRepository(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		logger.Error("worker cannot start", slog.String("error", err.Error()))
		return
	}
	defer cleanupRepo()
	catalogService := catalogobs.New(
		catalogapp.NewService(repo, catalogapp.WithImportLedger(ledger)),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	activities := catalogactivities.NewActivities(catalogService)

	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("address", cfg.TemporalAddress), slog.String("error", err.Error()))
		return
	}
	defer temporalClient.Close()

	// catalog imports run one at a time.
	w := worker.New(temporalClient, catalogworkflows.CatalogImportTaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize: 1,
	})
	w.RegisterWorkflowWithOptions(catalogworkflows.CatalogImportWorkflow, workflow.RegisterOptions{Name: catalogworkflows.CatalogImportWorkflowName})
	w.RegisterActivityWithOptions(activities.ImportCatalog, activity.RegisterOptions{Name: catalogactivities.ImportCatalogActivityName})

	logger.Info("worker listening", slog.String("taskQueue", catalogworkflows.CatalogImportTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

// buildCatalogRepository requires postgres: the API only routes imports to Temporal when it
// reads the same postgres catalog, so a worker with a private store would import into nothing.
func buildCatalogRepository(ctx context.Context, dsn string, logger *slog.Logger) (catalogports.Repository, catalogports.ImportLedger, func(), error) {
	db, cleanup := platformpostgres.ConnectDSN(ctx, dsn, logger)
	if db == nil {
		return nil, nil, nil, errors.New("worker requires a reachable POSTGRES_DSN")
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("migrate catalog schema: %w", err)
	}
	logger.Info("worker catalog repository configured with postgres")
	return catalogpostgres.NewRepository(db), catalogpostgres.NewImportLedger(db), cleanup, nil
}
