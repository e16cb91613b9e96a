package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	carttypes "github.com/Apurer/exotica-pets/internal/domains/cart/application/types"
	"github.com/Apurer/exotica-pets/internal/domains/cart/domain"
	"github.com/Apurer/exotica-pets/internal/domains/cart/ports"
)

// Service owns the lifetime of cart sessions and applies shopper actions to them.
type Service struct {
	repo    ports.Repository
	catalog ports.CatalogReader
	now     func() time.Time
	newID   func() string
}

// Option customizes the cart service.
type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides cart id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires the cart service with its dependencies.
func NewService(repo ports.Repository, catalog ports.CatalogReader, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Open starts an empty cart session.
func (s *Service) Open(ctx context.Context) (*carttypes.CartView, error) {
	cart, err := domain.NewCart(s.newID(), s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, mapError(err)
	}
	return carttypes.NewCartView(cart), nil
}

// Get returns the current state of a cart.
func (s *Service) Get(ctx context.Context, input carttypes.CartIdentifier) (*carttypes.CartView, error) {
	id, err := cartID(input.ID)
	if err != nil {
		return nil, err
	}
	cart, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return carttypes.NewCartView(cart), nil
}

// AddItem adds one unit of a catalog animal. Animals that cannot be purchased are rejected
// here; the cart itself never consults stock.
func (s *Service) AddItem(ctx context.Context, input carttypes.AddItemInput) (*carttypes.CartView, error) {
	id, err := cartID(input.CartID)
	if err != nil {
		return nil, err
	}
	animalID := strings.TrimSpace(input.AnimalID)
	if animalID == "" {
		return nil, fmt.Errorf("%w: animal id is required", ErrInvalidInput)
	}
	animal, err := s.catalog.Animal(ctx, animalID)
	if err != nil {
		return nil, mapError(err)
	}
	if !animal.Purchasable() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfStock, animalID)
	}
	snapshot := *animal
	return s.update(ctx, id, func(c *domain.Cart) error {
		c.Add(snapshot)
		return nil
	})
}

// SetQuantity overwrites the quantity of a line. Quantities above the units on hand are
// rejected; zero or below removes the line; unknown animals leave the cart unchanged.
func (s *Service) SetQuantity(ctx context.Context, input carttypes.SetQuantityInput) (*carttypes.CartView, error) {
	id, err := cartID(input.CartID)
	if err != nil {
		return nil, err
	}
	animalID := strings.TrimSpace(input.AnimalID)
	return s.update(ctx, id, func(c *domain.Cart) error {
		if line, ok := c.Line(animalID); ok && input.Quantity > line.Animal.StockQuantity {
			return fmt.Errorf("%w: %d requested, %d available", ErrExceedsStock, input.Quantity, line.Animal.StockQuantity)
		}
		c.SetQuantity(animalID, input.Quantity)
		return nil
	})
}

// RemoveItem deletes a line; removing an absent animal is a no-op.
func (s *Service) RemoveItem(ctx context.Context, input carttypes.ItemIdentifier) (*carttypes.CartView, error) {
	id, err := cartID(input.CartID)
	if err != nil {
		return nil, err
	}
	animalID := strings.TrimSpace(input.AnimalID)
	return s.update(ctx, id, func(c *domain.Cart) error {
		c.Remove(animalID)
		return nil
	})
}

// Clear empties a cart but keeps the session.
func (s *Service) Clear(ctx context.Context, input carttypes.CartIdentifier) (*carttypes.CartView, error) {
	id, err := cartID(input.ID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
}

// Close ends a cart session.
func (s *Service) Close(ctx context.Context, input carttypes.CartIdentifier) error {
	id, err := cartID(input.ID)
	if err != nil {
		return err
	}
	return mapError(s.repo.Delete(ctx, id))
}

// PurgeIdle ends every session not touched within maxIdle and reports how many were dropped.
func (s *Service) PurgeIdle(ctx context.Context, maxIdle time.Duration) (int, error) {
	if maxIdle <= 0 {
		return 0, fmt.Errorf("%w: idle ttl must be positive", ErrInvalidInput)
	}
	ids, err := s.repo.PurgeIdle(ctx, s.now().Add(-maxIdle))
	if err != nil {
		return 0, mapError(err)
	}
	return len(ids), nil
}

func (s *Service) update(ctx context.Context, id string, mutate func(*domain.Cart) error) (*carttypes.CartView, error) {
	now := s.now()
	cart, err := s.repo.Update(ctx, id, func(c *domain.Cart) error {
		if err := mutate(c); err != nil {
			return err
		}
		c.Touch(now)
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return carttypes.NewCartView(cart), nil
}

func cartID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", mapError(domain.ErrEmptyCartID)
	}
	return id, nil
}

var _ ports.Service = (*Service)(nil)
