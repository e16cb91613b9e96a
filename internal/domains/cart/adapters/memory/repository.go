package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/exotica-pets/internal/domains/cart/domain"
	"github.com/Apurer/exotica-pets/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

var errDuplicateCart = errors.New("cart already exists")

// Repository keeps cart sessions in process memory; they do not survive a restart.
type Repository struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

// NewRepository constructs an empty in-memory cart store.
func NewRepository() *Repository {
	return &Repository{carts: map[string]*domain.Cart{}}
}

// Create stores a new cart.
func (r *Repository) Create(_ context.Context, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cannot create nil cart")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[cart.ID]; ok {
		return errDuplicateCart
	}
	r.carts[cart.ID] = cart.Clone()
	return nil
}

// Get returns a copy of the cart.
func (r *Repository) Get(_ context.Context, id string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cart.Clone(), nil
}

// Update applies mutate to a working copy and stores it only when mutate succeeds.
func (r *Repository) Update(_ context.Context, id string, mutate func(*domain.Cart) error) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	working := cart.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	r.carts[id] = working
	return working.Clone(), nil
}

// Delete drops a cart.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.carts[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.carts, id)
	return nil
}

// PurgeIdle drops carts last updated before cutoff.
func (r *Repository) PurgeIdle(_ context.Context, cutoff time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var purged []string
	for id, cart := range r.carts {
		if cart.UpdatedAt.Before(cutoff) {
			purged = append(purged, id)
			delete(r.carts, id)
		}
	}
	sort.Strings(purged)
	return purged, nil
}

// Count reports the number of open carts.
func (r *Repository) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts), nil
}
