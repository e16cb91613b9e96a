package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPriceRange = errors.New("price range is invalid")

// PriceRange bounds a price filter. A null Max means no upper bound.
type PriceRange struct {
	Key   string
	Label string
	Min   decimal.Decimal
	Max   decimal.NullDecimal
}

// Contains reports whether price falls inside the inclusive range.
func (r PriceRange) Contains(price decimal.Decimal) bool {
	if price.LessThan(r.Min) {
		return false
	}
	if r.Max.Valid && price.GreaterThan(r.Max.Decimal) {
		return false
	}
	return true
}

// Unbounded reports whether the range matches every price.
func (r PriceRange) Unbounded() bool {
	return r.Min.IsZero() && !r.Max.Valid
}

// PriceRangePresets are the sidebar shortcuts.
func PriceRangePresets() []PriceRange {
	return []PriceRange{
		{Key: "0-50", Label: "$0 - $50", Min: decimal.Zero, Max: bound(50)},
		{Key: "50-150", Label: "$50 - $150", Min: decimal.NewFromInt(50), Max: bound(150)},
		{Key: "150-300", Label: "$150 - $300", Min: decimal.NewFromInt(150), Max: bound(300)},
		{Key: "300+", Label: "$300+", Min: decimal.NewFromInt(300)},
	}
}

// LookupPriceRange resolves a preset key.
func LookupPriceRange(key string) (PriceRange, error) {
	key = strings.TrimSpace(key)
	for _, preset := range PriceRangePresets() {
		if preset.Key == key {
			return preset, nil
		}
	}
	return PriceRange{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidPriceRange, key)
}

// NewPriceRange builds an explicit range; max may be null.
func NewPriceRange(min decimal.Decimal, max decimal.NullDecimal) (PriceRange, error) {
	if min.IsNegative() {
		return PriceRange{}, fmt.Errorf("%w: minimum below zero", ErrInvalidPriceRange)
	}
	if max.Valid && max.Decimal.LessThan(min) {
		return PriceRange{}, fmt.Errorf("%w: maximum below minimum", ErrInvalidPriceRange)
	}
	r := PriceRange{Min: min, Max: max}
	r.Label = "$" + min.String() + " - "
	if max.Valid {
		r.Label += "$" + max.Decimal.String()
	} else {
		r.Label += "∞"
	}
	return r, nil
}

func bound(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

// Filter narrows catalog listings. Zero-valued fields match everything.
type Filter struct {
	Category  Category
	CareLevel CareLevel
	Size      Size
	Price     PriceRange
	Search    string
}

// Matches applies every active criterion conjunctively.
func (f Filter) Matches(a *Animal) bool {
	if a == nil {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.CareLevel != "" && a.CareLevel != f.CareLevel {
		return false
	}
	if f.Size != "" && a.Size != f.Size {
		return false
	}
	if !f.Price.Contains(a.Price) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(a.Name), term) && !strings.Contains(strings.ToLower(a.Species), term) {
			return false
		}
	}
	return true
}

// ActiveFilter is a badge describing one applied criterion.
type ActiveFilter struct {
	Field string
	Label string
}

// Active lists the applied criteria in sidebar order.
func (f Filter) Active() []ActiveFilter {
	var active []ActiveFilter
	if f.Category != "" {
		active = append(active, ActiveFilter{Field: "category", Label: f.Category.Label()})
	}
	if f.CareLevel != "" {
		active = append(active, ActiveFilter{Field: "careLevel", Label: f.CareLevel.Label()})
	}
	if f.Size != "" {
		active = append(active, ActiveFilter{Field: "size", Label: f.Size.Label()})
	}
	if !f.Price.Unbounded() {
		active = append(active, ActiveFilter{Field: "price", Label: f.Price.Label})
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		active = append(active, ActiveFilter{Field: "q", Label: term})
	}
	return active
}
