package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCategory  = errors.New("category is not one of the catalog categories")
	ErrInvalidCareLevel = errors.New("care level is not recognized")
	ErrInvalidSize      = errors.New("size is not recognized")
)

// Category groups animals in the catalog.
type Category string

const (
	CategoryReptiles   Category = "reptiles"
	CategoryBirds      Category = "birds"
	CategoryMammals    Category = "mammals"
	CategoryAmphibians Category = "amphibians"
	CategoryFish       Category = "fish"
)

var categoryLabels = map[Category]string{
	CategoryReptiles:   "Reptiles",
	CategoryBirds:      "Aves",
	CategoryMammals:    "Mamíferos",
	CategoryAmphibians: "Anfibios",
	CategoryFish:       "Peces",
}

// AllCategories lists the categories in sidebar order.
func AllCategories() []Category {
	return []Category{CategoryReptiles, CategoryBirds, CategoryMammals, CategoryAmphibians, CategoryFish}
}

// ParseCategory accepts the canonical code or the display label.
func ParseCategory(raw string) (Category, error) {
	value := strings.TrimSpace(raw)
	for _, c := range AllCategories() {
		if strings.EqualFold(value, string(c)) || strings.EqualFold(value, categoryLabels[c]) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the storefront display label.
func (c Category) Label() string {
	return categoryLabels[c]
}

// CareLevel describes how demanding an animal is to keep.
type CareLevel string

const (
	CareLevelEasy         CareLevel = "easy"
	CareLevelIntermediate CareLevel = "intermediate"
	CareLevelAdvanced     CareLevel = "advanced"
)

var careLevelLabels = map[CareLevel]string{
	CareLevelEasy:         "Fácil",
	CareLevelIntermediate: "Intermedio",
	CareLevelAdvanced:     "Avanzado",
}

func AllCareLevels() []CareLevel {
	return []CareLevel{CareLevelEasy, CareLevelIntermediate, CareLevelAdvanced}
}

// ParseCareLevel accepts the canonical code or the display label.
func ParseCareLevel(raw string) (CareLevel, error) {
	value := strings.TrimSpace(raw)
	for _, l := range AllCareLevels() {
		if strings.EqualFold(value, string(l)) || strings.EqualFold(value, careLevelLabels[l]) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCareLevel, raw)
}

func (l CareLevel) Valid() bool {
	_, ok := careLevelLabels[l]
	return ok
}

func (l CareLevel) Label() string {
	return careLevelLabels[l]
}

// Size is the adult size class of an animal.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

var sizeLabels = map[Size]string{
	SizeSmall:  "Pequeño",
	SizeMedium: "Mediano",
	SizeLarge:  "Grande",
}

func AllSizes() []Size {
	return []Size{SizeSmall, SizeMedium, SizeLarge}
}

// ParseSize accepts the canonical code or the display label.
func ParseSize(raw string) (Size, error) {
	value := strings.TrimSpace(raw)
	for _, s := range AllSizes() {
		if strings.EqualFold(value, string(s)) || strings.EqualFold(value, sizeLabels[s]) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSize, raw)
}

func (s Size) Valid() bool {
	_, ok := sizeLabels[s]
	return ok
}

func (s Size) Label() string {
	return sizeLabels[s]
}
