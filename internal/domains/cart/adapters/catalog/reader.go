package catalog

import (
	"context"
	"errors"

	"github.com/Apurer/exotica-pets/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

var _ ports.CatalogReader = (*Reader)(nil)

// Reader resolves cart additions against the catalog repository.
type Reader struct {
	repo catalogports.Repository
}

func NewReader(repo catalogports.Repository) *Reader {
	return &Reader{repo: repo}
}

func (r *Reader) Animal(ctx context.Context, id string) (*catalogdomain.Animal, error) {
	projection, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return nil, ports.ErrAnimalNotFound
		}
		return nil, err
	}
	return projection.Entity, nil
}
