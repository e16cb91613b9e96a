package ports

import (
	"context"
	"errors"

	catalogdomain "github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
)

// ErrAnimalNotFound is returned by a CatalogReader for unknown ids.
var ErrAnimalNotFound = errors.New("animal not found in catalog")

// CatalogReader resolves the listing a shopper adds to the cart.
type CatalogReader interface {
	Animal(ctx context.Context, id string) (*catalogdomain.Animal, error)
}
