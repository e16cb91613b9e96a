package ports

import (
	"context"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
)

// Source loads a catalog document from outside the process (file, object storage, embedded seed).
type Source interface {
	Load(ctx context.Context) (catalogtypes.ImportCatalogInput, error)
	Describe() string
}
