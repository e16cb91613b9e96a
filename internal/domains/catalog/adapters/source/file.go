package source

import (
	"context"
	"fmt"
	"os"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

var _ ports.Source = (*FileSource)(nil)

// FileSource reads a catalog document from the local filesystem.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(_ context.Context) (catalogtypes.ImportCatalogInput, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return catalogtypes.ImportCatalogInput{}, fmt.Errorf("failed to read catalog file %s: %w", s.Path, err)
	}
	return Parse(data, s.Describe())
}

func (s *FileSource) Describe() string { return "file://" + s.Path }
