package source

import (
	"context"
	_ "embed"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

//go:embed seed/catalog.yaml
var seedCatalog []byte

var _ ports.Source = EmbeddedSource{}

// EmbeddedSource serves the catalog bundled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Load(_ context.Context) (catalogtypes.ImportCatalogInput, error) {
	return Parse(seedCatalog, EmbeddedSource{}.Describe())
}

func (EmbeddedSource) Describe() string { return "embedded:seed/catalog.yaml" }
