package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseEnums_AcceptsCodesAndLabels(t *testing.T) {
	c, err := ParseCategory("Aves")
	require.NoError(t, err)
	require.Equal(t, CategoryBirds, c)

	c, err = ParseCategory(" reptiles ")
	require.NoError(t, err)
	require.Equal(t, CategoryReptiles, c)

	l, err := ParseCareLevel("Fácil")
	require.NoError(t, err)
	require.Equal(t, CareLevelEasy, l)

	s, err := ParseSize("grande")
	require.NoError(t, err)
	require.Equal(t, SizeLarge, s)
}

func TestParseEnums_RejectsUnknown(t *testing.T) {
	_, err := ParseCategory("insects")
	require.ErrorIs(t, err, ErrInvalidCategory)

	_, err = ParseCareLevel("expert")
	require.ErrorIs(t, err, ErrInvalidCareLevel)

	_, err = ParseSize("")
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestNewAnimal_ValidatesInvariants(t *testing.T) {
	_, err := NewAnimal(" ", "Gecko", CategoryReptiles, CareLevelEasy, SizeSmall)
	require.ErrorIs(t, err, ErrEmptyID)

	_, err = NewAnimal("gecko", "", CategoryReptiles, CareLevelEasy, SizeSmall)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewAnimal("gecko", "Gecko", Category("bugs"), CareLevelEasy, SizeSmall)
	require.ErrorIs(t, err, ErrInvalidCategory)

	a, err := NewAnimal("gecko", "Gecko leopardo", CategoryReptiles, CareLevelEasy, SizeSmall)
	require.NoError(t, err)
	require.Equal(t, "gecko", a.ID)
	require.NoError(t, a.Validate())
}

func TestAnimal_RepriceAndRestock(t *testing.T) {
	a, err := NewAnimal("axolotl", "Ajolote", CategoryAmphibians, CareLevelIntermediate, SizeSmall)
	require.NoError(t, err)

	require.ErrorIs(t, a.Reprice(decimal.NewFromInt(-1)), ErrNegativePrice)
	require.NoError(t, a.Reprice(decimal.RequireFromString("89.99")))
	require.NoError(t, a.Reprice(decimal.RequireFromString("89.990")))
	require.ErrorIs(t, a.Reprice(decimal.RequireFromString("0.005")), ErrSubCentPrice)
	require.True(t, decimal.RequireFromString("89.99").Equal(a.Price))
	require.ErrorIs(t, a.Restock(true, -1), ErrNegativeStock)

	require.NoError(t, a.Restock(true, 0))
	require.False(t, a.Purchasable())
	require.NoError(t, a.Restock(false, 3))
	require.False(t, a.Purchasable())
	require.NoError(t, a.Restock(true, 3))
	require.True(t, a.Purchasable())
}
