package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

func animal(id, name string, category domain.Category, price int64) *domain.Animal {
	return &domain.Animal{
		ID:            id,
		Name:          name,
		Category:      category,
		CareLevel:     domain.CareLevelEasy,
		Size:          domain.SizeSmall,
		Price:         decimal.NewFromInt(price),
		InStock:       true,
		StockQuantity: 2,
	}
}

func TestRepository_SaveKeepsCreatedAt(t *testing.T) {
	repo := NewRepository()
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return first })

	saved, err := repo.Save(context.Background(), animal("gecko", "Gecko", domain.CategoryReptiles, 45))
	require.NoError(t, err)
	require.Equal(t, first, saved.Metadata.CreatedAt)

	later := first.Add(time.Hour)
	repo.WithClock(func() time.Time { return later })
	updated, err := repo.Save(context.Background(), animal("gecko", "Gecko leopardo", domain.CategoryReptiles, 50))
	require.NoError(t, err)
	require.Equal(t, first, updated.Metadata.CreatedAt)
	require.Equal(t, later, updated.Metadata.UpdatedAt)
	require.Equal(t, "Gecko leopardo", updated.Entity.Name)
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository()
	_, err := repo.Save(context.Background(), animal("gecko", "Gecko", domain.CategoryReptiles, 45))
	require.NoError(t, err)

	loaded, err := repo.GetByID(context.Background(), "gecko")
	require.NoError(t, err)
	loaded.Entity.Name = "mutated"

	again, err := repo.GetByID(context.Background(), "gecko")
	require.NoError(t, err)
	require.Equal(t, "Gecko", again.Entity.Name)
}

func TestRepository_FindFiltersAndOrders(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	for _, a := range []*domain.Animal{
		animal("python", "Pitón bola", domain.CategoryReptiles, 320),
		animal("gecko", "Gecko", domain.CategoryReptiles, 45),
		animal("parrot", "Agapornis", domain.CategoryBirds, 120),
	} {
		_, err := repo.Save(ctx, a)
		require.NoError(t, err)
	}

	all, err := repo.Find(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "parrot", all[0].Entity.ID)

	reptiles, err := repo.Find(ctx, domain.Filter{Category: domain.CategoryReptiles})
	require.NoError(t, err)
	require.Len(t, reptiles, 2)
	require.Equal(t, "gecko", reptiles[0].Entity.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestRepository_DeleteMissing(t *testing.T) {
	repo := NewRepository()
	require.ErrorIs(t, repo.Delete(context.Background(), "ghost"), ports.ErrNotFound)
	_, err := repo.GetByID(context.Background(), "ghost")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_RejectsInvalid(t *testing.T) {
	repo := NewRepository()
	bad := animal("gecko", "Gecko", domain.Category("bugs"), 10)
	_, err := repo.Save(context.Background(), bad)
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}
