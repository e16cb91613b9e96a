package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

func openTemp(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func listing(id, name, species string, category domain.Category, price string) *domain.Animal {
	return &domain.Animal{
		ID:            id,
		Name:          name,
		Species:       species,
		Category:      category,
		CareLevel:     domain.CareLevelIntermediate,
		Size:          domain.SizeMedium,
		Price:         decimal.RequireFromString(price),
		InStock:       true,
		StockQuantity: 4,
	}
}

func TestRepository_SaveRoundTripsExactPrice(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, listing("chameleon", "Camaleón Velado", "Chamaeleo calyptratus", domain.CategoryReptiles, "149.99"))
	require.NoError(t, err)
	assert.Equal(t, "149.99", saved.Entity.Price.StringFixed(2))
	assert.Equal(t, domain.CareLevelIntermediate, saved.Entity.CareLevel)
}

func TestRepository_UpsertKeepsCreatedAt(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()
	first := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return first })
	_, err := repo.Save(ctx, listing("chameleon", "Camaleón", "", domain.CategoryReptiles, "150"))
	require.NoError(t, err)

	later := first.Add(2 * time.Hour)
	repo.WithClock(func() time.Time { return later })
	updated, err := repo.Save(ctx, listing("chameleon", "Camaleón Velado", "", domain.CategoryReptiles, "160"))
	require.NoError(t, err)
	assert.Equal(t, first, updated.Metadata.CreatedAt)
	assert.Equal(t, later, updated.Metadata.UpdatedAt)
	assert.Equal(t, "Camaleón Velado", updated.Entity.Name)
}

func TestRepository_FindCombinesSQLAndDomainFilters(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()
	for _, a := range []*domain.Animal{
		listing("chameleon", "Camaleón", "Chamaeleo calyptratus", domain.CategoryReptiles, "150"),
		listing("iguana", "Iguana Verde", "Iguana iguana", domain.CategoryReptiles, "90"),
		listing("cockatiel", "Cacatúa Ninfa", "Nymphicus hollandicus", domain.CategoryBirds, "85"),
	} {
		_, err := repo.Save(ctx, a)
		require.NoError(t, err)
	}

	all, err := repo.Find(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "cockatiel", all[0].Entity.ID)

	mid, err := domain.LookupPriceRange("50-150")
	require.NoError(t, err)
	reptiles, err := repo.Find(ctx, domain.Filter{Category: domain.CategoryReptiles, Price: mid})
	require.NoError(t, err)
	require.Len(t, reptiles, 2)

	search, err := repo.Find(ctx, domain.Filter{Search: "iguana"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "iguana", search[0].Entity.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_DeleteAndMissing(t *testing.T) {
	repo := openTemp(t)
	ctx := context.Background()
	_, err := repo.Save(ctx, listing("iguana", "Iguana", "", domain.CategoryReptiles, "90"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "iguana"))
	assert.ErrorIs(t, repo.Delete(ctx, "iguana"), ports.ErrNotFound)
	_, err = repo.GetByID(ctx, "iguana")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")
	repo, err := Open(path)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), listing("iguana", "Iguana", "", domain.CategoryReptiles, "90"))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.GetByID(context.Background(), "iguana")
	require.NoError(t, err)
	assert.Equal(t, "Iguana", got.Entity.Name)
}
