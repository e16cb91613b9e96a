package ports

import (
	"context"
	"errors"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	"github.com/Apurer/exotica-pets/internal/shared/projection"
)

var ErrNotFound = errors.New("animal not found")

// Repository persists catalog listings.
type Repository interface {
	Save(ctx context.Context, animal *domain.Animal) (*projection.Projection[*domain.Animal], error)
	GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Animal], error)
	Delete(ctx context.Context, id string) error
	// Find returns listings matching filter ordered by name, then id.
	Find(ctx context.Context, filter domain.Filter) ([]*projection.Projection[*domain.Animal], error)
	Count(ctx context.Context) (int, error)
}
