package api

import (
	"context"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/client"

	catalogmemory "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/persistence/postgres"
	catalogsqlite "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/persistence/sqlite"
	catalogsource "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/source"
	catalogworkflows "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/workflows"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	"github.com/Apurer/exotica-pets/internal/platform/migrations"
	platformpostgres "github.com/Apurer/exotica-pets/internal/platform/postgres"
)

const (
	backendPostgres = "postgres"
	backendSQLite   = "sqlite"
	backendMemory   = "memory"
)

// catalogStore bundles the selected catalog persistence.
type catalogStore struct {
	repo    catalogports.Repository
	ledger  catalogports.ImportLedger
	backend string
	cleanup func()
}

// buildCatalogStore prefers postgres, then sqlite, then memory.
func buildCatalogStore(ctx context.Context, cfg Config, logger *slog.Logger) catalogStore {
	if db, cleanup := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger); db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Warn("failed to migrate catalog schema, falling back", slog.String("error", err.Error()))
			cleanup()
		} else {
			logger.Info("catalog repository configured with postgres")
			return catalogStore{
				repo:    catalogpostgres.NewRepository(db),
				ledger:  catalogpostgres.NewImportLedger(db),
				backend: backendPostgres,
				cleanup: cleanup,
			}
		}
	}
	if cfg.CatalogSQLitePath != "" {
		repo, err := catalogsqlite.Open(cfg.CatalogSQLitePath)
		if err != nil {
			logger.Warn("failed to open sqlite catalog, falling back to memory", slog.String("path", cfg.CatalogSQLitePath), slog.String("error", err.Error()))
		} else {
			logger.Info("catalog repository configured with sqlite", slog.String("path", repo.Path()))
			return catalogStore{
				repo:    repo,
				ledger:  catalogmemory.NewImportLedger(),
				backend: backendSQLite,
				cleanup: func() { _ = repo.Close() },
			}
		}
	}
	logger.Info("catalog repository configured in memory")
	return catalogStore{
		repo:    catalogmemory.NewRepository(),
		ledger:  catalogmemory.NewImportLedger(),
		backend: backendMemory,
		cleanup: func() {},
	}
}

// catalogOrchestrator hands imports to the Temporal worker only when both processes share the
// postgres catalog. Memory and sqlite catalogs live inside the API, so imports run inline there.
func catalogOrchestrator(store catalogStore, service catalogports.Service, temporalClient client.Client, logger *slog.Logger) catalogports.WorkflowOrchestrator {
	switch {
	case temporalClient == nil:
		logger.Info("catalog imports run inline", slog.String("catalog", store.backend), slog.String("reason", "temporal unavailable"))
	case store.backend != backendPostgres:
		logger.Info("catalog imports run inline", slog.String("catalog", store.backend), slog.String("reason", "catalog not shared with the worker"))
	default:
		logger.Info("catalog imports run on Temporal", slog.String("catalog", store.backend))
		return catalogworkflows.NewTemporalCatalogWorkflows(temporalClient)
	}
	return catalogworkflows.NewInlineCatalogWorkflows(service)
}

// seedCatalog imports the configured document into an empty catalog. Postgres catalogs are
// loaded with cmd/catalog-import instead.
func seedCatalog(ctx context.Context, store catalogStore, service catalogports.Service, cfg Config, logger *slog.Logger) error {
	if store.backend == backendPostgres {
		return nil
	}
	count, err := store.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if count > 0 {
		return nil
	}
	src, err := catalogsource.Resolve(ctx, cfg.CatalogSource, cfg.S3)
	if err != nil {
		return fmt.Errorf("resolve catalog source: %w", err)
	}
	input, err := src.Load(ctx)
	if err != nil {
		return err
	}
	result, err := service.Import(ctx, input)
	if err != nil {
		return fmt.Errorf("seed catalog from %s: %w", src.Describe(), err)
	}
	logger.Info("catalog seeded",
		slog.String("source", src.Describe()),
		slog.Int("imported", len(result.Imported)),
		slog.Int("rejected", len(result.Rejected)))
	return nil
}
