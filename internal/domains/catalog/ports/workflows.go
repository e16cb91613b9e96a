package ports

import (
	"context"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the catalog bounded context.
type WorkflowOrchestrator interface {
	ImportCatalog(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error)
}
