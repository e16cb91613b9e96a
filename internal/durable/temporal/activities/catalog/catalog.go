package catalog

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

const (
	// ImportCatalogActivityName applies a catalog batch through the catalog service.
	ImportCatalogActivityName = "catalog.activities.ImportCatalog"
	// ImportConflictErrorType marks a reused idempotency key; retrying cannot succeed.
	ImportConflictErrorType = "ImportConflict"
)

// Activities groups activities that operate on the catalog bounded context.
type Activities struct {
	service catalogports.Service
}

// NewActivities wires the catalog service into the Temporal activities bundle.
func NewActivities(service catalogports.Service) *Activities {
	return &Activities{service: service}
}

// ImportCatalog upserts every valid record of the batch and reports the rejected ones.
func (a *Activities) ImportCatalog(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("catalog import activity not initialized", "source", input.Source)
		return nil, errors.New("catalog import activity not initialized")
	}
	logger.Info("ImportCatalog activity started", "source", input.Source, "records", len(input.Animals))
	result, err := a.service.Import(ctx, input)
	if err != nil {
		logger.Error("ImportCatalog activity failed", "source", input.Source, "error", err)
		if errors.Is(err, catalogports.ErrImportConflict) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ImportConflictErrorType, err)
		}
		return nil, err
	}
	logger.Info("ImportCatalog activity completed", "source", input.Source,
		"imported", len(result.Imported), "rejected", len(result.Rejected), "replayed", result.Replayed)
	return result, nil
}
