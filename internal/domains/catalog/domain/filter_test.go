package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func priced(id, name, species string, category Category, price string) *Animal {
	return &Animal{
		ID:        id,
		Name:      name,
		Species:   species,
		Category:  category,
		CareLevel: CareLevelEasy,
		Size:      SizeSmall,
		Price:     decimal.RequireFromString(price),
	}
}

func TestFilter_ZeroValueMatchesEverything(t *testing.T) {
	var f Filter
	require.True(t, f.Matches(priced("a", "Pitón", "Python regius", CategoryReptiles, "1200")))
	require.Empty(t, f.Active())
}

func TestFilter_PresetOpenEndedUpperBound(t *testing.T) {
	r, err := LookupPriceRange("300+")
	require.NoError(t, err)
	require.True(t, r.Contains(decimal.NewFromInt(300)))
	require.True(t, r.Contains(decimal.NewFromInt(5000)))
	require.False(t, r.Contains(decimal.RequireFromString("299.99")))

	r, err = LookupPriceRange("50-150")
	require.NoError(t, err)
	require.True(t, r.Contains(decimal.NewFromInt(150)))
	require.False(t, r.Contains(decimal.RequireFromString("150.01")))

	_, err = LookupPriceRange("cheap")
	require.ErrorIs(t, err, ErrInvalidPriceRange)
}

func TestFilter_CombinesCriteria(t *testing.T) {
	r, err := LookupPriceRange("0-50")
	require.NoError(t, err)
	f := Filter{Category: CategoryFish, Price: r, Search: "betta"}

	require.True(t, f.Matches(priced("betta", "Pez Betta", "Betta splendens", CategoryFish, "25")))
	require.False(t, f.Matches(priced("betta-xl", "Pez Betta", "Betta splendens", CategoryFish, "80")))
	require.False(t, f.Matches(priced("parrot", "Loro betta", "Ara", CategoryBirds, "25")))
	require.False(t, f.Matches(priced("guppy", "Guppy", "Poecilia reticulata", CategoryFish, "5")))
	require.False(t, f.Matches(nil))

	active := f.Active()
	require.Len(t, active, 3)
	require.Equal(t, "Peces", active[0].Label)
	require.Equal(t, "$0 - $50", active[1].Label)
	require.Equal(t, "betta", active[2].Label)
}

func TestNewPriceRange(t *testing.T) {
	_, err := NewPriceRange(decimal.NewFromInt(-1), decimal.NullDecimal{})
	require.ErrorIs(t, err, ErrInvalidPriceRange)

	_, err = NewPriceRange(decimal.NewFromInt(10), decimal.NewNullDecimal(decimal.NewFromInt(5)))
	require.ErrorIs(t, err, ErrInvalidPriceRange)

	r, err := NewPriceRange(decimal.NewFromInt(10), decimal.NullDecimal{})
	require.NoError(t, err)
	require.Equal(t, "$10 - ∞", r.Label)
	require.False(t, r.Unbounded())
}
