package ports

import (
	"context"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
)

// Service defines the catalog use cases exposed to adapters (inbound/driving port).
type Service interface {
	List(ctx context.Context, input catalogtypes.ListAnimalsInput) (*catalogtypes.AnimalPage, error)
	GetByID(ctx context.Context, input catalogtypes.AnimalIdentifier) (*catalogtypes.AnimalProjection, error)
	Upsert(ctx context.Context, input catalogtypes.UpsertAnimalInput) (*catalogtypes.AnimalProjection, error)
	Delete(ctx context.Context, input catalogtypes.AnimalIdentifier) error
	Import(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error)
	Filters(ctx context.Context) (*catalogtypes.FilterOptions, error)
}
