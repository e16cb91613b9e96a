package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/exotica-pets/internal/domains/cart/domain"
)

var ErrNotFound = errors.New("cart not found")

// Repository holds the carts of active sessions.
type Repository interface {
	Create(ctx context.Context, cart *domain.Cart) error
	Get(ctx context.Context, id string) (*domain.Cart, error)
	// Update runs mutate against the stored cart while holding the cart exclusively and
	// returns the resulting state. An error from mutate leaves the stored cart unchanged.
	Update(ctx context.Context, id string, mutate func(*domain.Cart) error) (*domain.Cart, error)
	Delete(ctx context.Context, id string) error
	// PurgeIdle removes carts whose UpdatedAt is before cutoff and returns their ids.
	PurgeIdle(ctx context.Context, cutoff time.Time) ([]string, error)
	Count(ctx context.Context) (int, error)
}
