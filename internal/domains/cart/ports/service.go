package ports

import (
	"context"
	"time"

	carttypes "github.com/Apurer/exotica-pets/internal/domains/cart/application/types"
)

// Service defines the cart use cases exposed to adapters (inbound/driving port).
type Service interface {
	Open(ctx context.Context) (*carttypes.CartView, error)
	Get(ctx context.Context, input carttypes.CartIdentifier) (*carttypes.CartView, error)
	AddItem(ctx context.Context, input carttypes.AddItemInput) (*carttypes.CartView, error)
	SetQuantity(ctx context.Context, input carttypes.SetQuantityInput) (*carttypes.CartView, error)
	RemoveItem(ctx context.Context, input carttypes.ItemIdentifier) (*carttypes.CartView, error)
	Clear(ctx context.Context, input carttypes.CartIdentifier) (*carttypes.CartView, error)
	Close(ctx context.Context, input carttypes.CartIdentifier) error
	PurgeIdle(ctx context.Context, maxIdle time.Duration) (int, error)
}
