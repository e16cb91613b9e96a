package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	"github.com/Apurer/exotica-pets/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog used for development, tests, and as the seeded default.
type Repository struct {
	mu      sync.RWMutex
	animals map[string]*storedAnimal
	now     func() time.Time
}

type storedAnimal struct {
	animal   *domain.Animal
	metadata projection.Metadata
}

// NewRepository constructs an empty in-memory catalog.
func NewRepository() *Repository {
	return &Repository{
		animals: map[string]*storedAnimal{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces a listing while maintaining metadata.
func (r *Repository) Save(_ context.Context, animal *domain.Animal) (*projection.Projection[*domain.Animal], error) {
	if animal == nil {
		return nil, errors.New("cannot save nil animal")
	}
	if err := animal.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var metadata projection.Metadata
	if entry, ok := r.animals[animal.ID]; ok {
		metadata = entry.metadata
	}
	stored := &storedAnimal{
		animal:   animal.Clone(),
		metadata: metadata.Touch(r.now()),
	}
	r.animals[animal.ID] = stored
	return projectionCopy(stored), nil
}

// GetByID fetches a listing if present.
func (r *Repository) GetByID(_ context.Context, id string) (*projection.Projection[*domain.Animal], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.animals[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(entry), nil
}

// Delete removes a listing.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.animals[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.animals, id)
	return nil
}

// Find returns listings matching filter ordered by name, then id.
func (r *Repository) Find(_ context.Context, filter domain.Filter) ([]*projection.Projection[*domain.Animal], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*projection.Projection[*domain.Animal]
	for _, entry := range r.animals {
		if filter.Matches(entry.animal) {
			list = append(list, projectionCopy(entry))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i].Entity, list[j].Entity
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return list, nil
}

// Count reports the number of listings.
func (r *Repository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.animals), nil
}

func projectionCopy(entry *storedAnimal) *projection.Projection[*domain.Animal] {
	if entry == nil {
		return nil
	}
	return &projection.Projection[*domain.Animal]{
		Entity:   entry.animal.Clone(),
		Metadata: entry.metadata,
	}
}
