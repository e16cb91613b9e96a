package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
)

// ErrInvalidRecord indicates an inbound listing failed validation at the ingestion boundary.
var ErrInvalidRecord = errors.New("catalog record is invalid")

// RecordError carries per-field validation messages for one inbound listing.
type RecordError struct {
	Fields map[string]string
}

func (e *RecordError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidRecord, strings.Join(parts, "; "))
}

func (e *RecordError) Unwrap() error { return ErrInvalidRecord }

// AnimalIdentifier addresses a single listing.
type AnimalIdentifier struct {
	ID string
}

// UpsertAnimalInput is the raw shape of a listing before enum and price parsing.
type UpsertAnimalInput struct {
	ID            string
	Name          string
	Species       string
	Category      string
	Price         string
	ImageURL      string
	Description   string
	CareLevel     string
	Size          string
	Lifespan      string
	Habitat       string
	Diet          string
	InStock       bool
	StockQuantity int
}

// ToDomainAnimal parses the closed sets and price, reporting every failing field at once.
func (in UpsertAnimalInput) ToDomainAnimal() (*domain.Animal, error) {
	fields := map[string]string{}
	category, err := domain.ParseCategory(in.Category)
	if err != nil {
		fields["category"] = err.Error()
	}
	careLevel, err := domain.ParseCareLevel(in.CareLevel)
	if err != nil {
		fields["careLevel"] = err.Error()
	}
	size, err := domain.ParseSize(in.Size)
	if err != nil {
		fields["size"] = err.Error()
	}
	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil {
		fields["price"] = "price must be a decimal number"
	} else if price.IsNegative() {
		fields["price"] = domain.ErrNegativePrice.Error()
	} else if !domain.WholeCents(price) {
		fields["price"] = domain.ErrSubCentPrice.Error()
	}
	if in.StockQuantity < 0 {
		fields["stockQuantity"] = domain.ErrNegativeStock.Error()
	}
	if strings.TrimSpace(in.ID) == "" {
		fields["id"] = domain.ErrEmptyID.Error()
	}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = domain.ErrEmptyName.Error()
	}
	if len(fields) > 0 {
		return nil, &RecordError{Fields: fields}
	}

	animal, err := domain.NewAnimal(in.ID, in.Name, category, careLevel, size)
	if err != nil {
		return nil, err
	}
	if err := animal.Reprice(price); err != nil {
		return nil, err
	}
	if err := animal.Restock(in.InStock, in.StockQuantity); err != nil {
		return nil, err
	}
	animal.Species = strings.TrimSpace(in.Species)
	animal.ImageURL = strings.TrimSpace(in.ImageURL)
	animal.Description = strings.TrimSpace(in.Description)
	animal.Lifespan = strings.TrimSpace(in.Lifespan)
	animal.Habitat = strings.TrimSpace(in.Habitat)
	animal.Diet = strings.TrimSpace(in.Diet)
	return animal, nil
}

// ListAnimalsInput carries the raw query parameters of a catalog search.
type ListAnimalsInput struct {
	Category   string
	CareLevel  string
	Size       string
	PriceRange string
	MinPrice   string
	MaxPrice   string
	Search     string
}

// ToFilter validates the query. A preset wins over explicit bounds.
func (in ListAnimalsInput) ToFilter() (domain.Filter, error) {
	var filter domain.Filter
	fields := map[string]string{}
	if strings.TrimSpace(in.Category) != "" {
		c, err := domain.ParseCategory(in.Category)
		if err != nil {
			fields["category"] = err.Error()
		}
		filter.Category = c
	}
	if strings.TrimSpace(in.CareLevel) != "" {
		l, err := domain.ParseCareLevel(in.CareLevel)
		if err != nil {
			fields["careLevel"] = err.Error()
		}
		filter.CareLevel = l
	}
	if strings.TrimSpace(in.Size) != "" {
		s, err := domain.ParseSize(in.Size)
		if err != nil {
			fields["size"] = err.Error()
		}
		filter.Size = s
	}
	switch {
	case strings.TrimSpace(in.PriceRange) != "":
		r, err := domain.LookupPriceRange(in.PriceRange)
		if err != nil {
			fields["priceRange"] = err.Error()
		}
		filter.Price = r
	case strings.TrimSpace(in.MinPrice) != "" || strings.TrimSpace(in.MaxPrice) != "":
		r, err := explicitRange(in.MinPrice, in.MaxPrice)
		if err != nil {
			fields["price"] = err.Error()
		}
		filter.Price = r
	}
	filter.Search = strings.TrimSpace(in.Search)
	if len(fields) > 0 {
		return domain.Filter{}, &RecordError{Fields: fields}
	}
	return filter, nil
}

func explicitRange(rawMin, rawMax string) (domain.PriceRange, error) {
	lower := decimal.Zero
	if v := strings.TrimSpace(rawMin); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return domain.PriceRange{}, fmt.Errorf("%w: minPrice is not a number", domain.ErrInvalidPriceRange)
		}
		lower = parsed
	}
	var upper decimal.NullDecimal
	if v := strings.TrimSpace(rawMax); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return domain.PriceRange{}, fmt.Errorf("%w: maxPrice is not a number", domain.ErrInvalidPriceRange)
		}
		upper = decimal.NewNullDecimal(parsed)
	}
	return domain.NewPriceRange(lower, upper)
}

// ImportCatalogInput is a batch of listings from a catalog document.
type ImportCatalogInput struct {
	Source         string
	IdempotencyKey string
	Animals        []UpsertAnimalInput
}
