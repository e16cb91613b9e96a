package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyID       = errors.New("animal id is required")
	ErrEmptyName     = errors.New("animal name is required")
	ErrNegativePrice = errors.New("price must be greater or equal to zero")
	ErrSubCentPrice  = errors.New("price must be a whole number of cents")
	ErrNegativeStock = errors.New("stock quantity must be greater or equal to zero")
)

// Animal is a sellable listing in the exotic pets catalog.
type Animal struct {
	ID            string
	Name          string
	Species       string
	Category      Category
	Price         decimal.Decimal
	ImageURL      string
	Description   string
	CareLevel     CareLevel
	Size          Size
	Lifespan      string
	Habitat       string
	Diet          string
	InStock       bool
	StockQuantity int
}

// NewAnimal validates the identity and classification of a listing.
func NewAnimal(id, name string, category Category, careLevel CareLevel, size Size) (*Animal, error) {
	a := &Animal{ID: strings.TrimSpace(id)}
	if a.ID == "" {
		return nil, ErrEmptyID
	}
	if err := a.Rename(name); err != nil {
		return nil, err
	}
	if err := a.Classify(category, careLevel, size); err != nil {
		return nil, err
	}
	return a, nil
}

// Rename mutates the display name ensuring it is not blank.
func (a *Animal) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	a.Name = strings.TrimSpace(name)
	return nil
}

// Classify replaces the enum attributes, rejecting values outside the closed sets.
func (a *Animal) Classify(category Category, careLevel CareLevel, size Size) error {
	if !category.Valid() {
		return ErrInvalidCategory
	}
	if !careLevel.Valid() {
		return ErrInvalidCareLevel
	}
	if !size.Valid() {
		return ErrInvalidSize
	}
	a.Category = category
	a.CareLevel = careLevel
	a.Size = size
	return nil
}

// Reprice sets a non-negative price.
func (a *Animal) Reprice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	if !WholeCents(price) {
		return ErrSubCentPrice
	}
	a.Price = price
	return nil
}

// Restock updates availability and the units on hand.
func (a *Animal) Restock(inStock bool, quantity int) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	a.InStock = inStock
	a.StockQuantity = quantity
	return nil
}

// Purchasable reports whether a shopper may add the animal to a cart.
func (a Animal) Purchasable() bool {
	return a.InStock && a.StockQuantity > 0
}

// Validate re-checks every invariant, used for records loaded from storage.
func (a *Animal) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Category.Valid() {
		return ErrInvalidCategory
	}
	if !a.CareLevel.Valid() {
		return ErrInvalidCareLevel
	}
	if !a.Size.Valid() {
		return ErrInvalidSize
	}
	if a.Price.IsNegative() {
		return ErrNegativePrice
	}
	if !WholeCents(a.Price) {
		return ErrSubCentPrice
	}
	if a.StockQuantity < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Clone returns an independent copy.
func (a *Animal) Clone() *Animal {
	if a == nil {
		return nil
	}
	copy := *a
	return &copy
}

// WholeCents reports whether price has no digits beyond the second decimal place.
// "45.500" qualifies, "0.005" does not.
func WholeCents(price decimal.Decimal) bool {
	return price.Equal(price.Truncate(2))
}
