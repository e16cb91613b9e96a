package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
)

// Animal is the HTTP representation of a listing. Prices are two-decimal strings.
type Animal struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Species        string    `json:"species"`
	Category       string    `json:"category"`
	CategoryLabel  string    `json:"categoryLabel"`
	Price          string    `json:"price"`
	ImageURL       string    `json:"image,omitempty"`
	Description    string    `json:"description,omitempty"`
	CareLevel      string    `json:"careLevel"`
	CareLevelLabel string    `json:"careLevelLabel"`
	Size           string    `json:"size"`
	SizeLabel      string    `json:"sizeLabel"`
	Lifespan       string    `json:"lifespan,omitempty"`
	Habitat        string    `json:"habitat,omitempty"`
	Diet           string    `json:"diet,omitempty"`
	InStock        bool      `json:"inStock"`
	StockQuantity  int       `json:"stockQuantity"`
	Purchasable    bool      `json:"purchasable"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}

// AnimalPayload captures inbound listings. Price accepts a JSON number or a numeric string.
type AnimalPayload struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Species       string           `json:"species"`
	Category      string           `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	ImageURL      string           `json:"image"`
	Description   string           `json:"description"`
	CareLevel     string           `json:"careLevel"`
	Size          string           `json:"size"`
	Lifespan      string           `json:"lifespan"`
	Habitat       string           `json:"habitat"`
	Diet          string           `json:"diet"`
	InStock       bool             `json:"inStock"`
	StockQuantity int              `json:"stockQuantity"`
}

// ListQuery binds the catalog search query string.
type ListQuery struct {
	Category   string `form:"category"`
	CareLevel  string `form:"careLevel"`
	Size       string `form:"size"`
	PriceRange string `form:"priceRange"`
	MinPrice   string `form:"minPrice"`
	MaxPrice   string `form:"maxPrice"`
	Search     string `form:"q"`
}

// ActiveFilter is one badge of the sidebar.
type ActiveFilter struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// AnimalList is the response of a catalog search.
type AnimalList struct {
	Items         []Animal       `json:"items"`
	Total         int            `json:"total"`
	ActiveFilters []ActiveFilter `json:"activeFilters"`
}

// Option is a selectable sidebar value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions lists the sidebar values.
type FilterOptions struct {
	Categories  []Option `json:"categories"`
	CareLevels  []Option `json:"careLevels"`
	Sizes       []Option `json:"sizes"`
	PriceRanges []Option `json:"priceRanges"`
}

// ImportRequest is the body of a catalog import.
type ImportRequest struct {
	Source         string          `json:"source"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Animals        []AnimalPayload `json:"animals" binding:"required"`
}

// ImportRejection explains one skipped record.
type ImportRejection struct {
	Index  int               `json:"index"`
	ID     string            `json:"id,omitempty"`
	Reason string            `json:"reason"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ImportResponse summarizes an import.
type ImportResponse struct {
	Source   string            `json:"source,omitempty"`
	Imported []string          `json:"imported"`
	Rejected []ImportRejection `json:"rejected"`
	Replayed bool              `json:"replayed"`
}

// FormatPrice renders a decimal as the two-decimal string used on the wire.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ToUpsertInput maps an inbound payload into the application input.
func ToUpsertInput(p AnimalPayload) catalogtypes.UpsertAnimalInput {
	price := ""
	if p.Price != nil {
		price = p.Price.String()
	}
	return catalogtypes.UpsertAnimalInput{
		ID:            p.ID,
		Name:          p.Name,
		Species:       p.Species,
		Category:      p.Category,
		Price:         price,
		ImageURL:      p.ImageURL,
		Description:   p.Description,
		CareLevel:     p.CareLevel,
		Size:          p.Size,
		Lifespan:      p.Lifespan,
		Habitat:       p.Habitat,
		Diet:          p.Diet,
		InStock:       p.InStock,
		StockQuantity: p.StockQuantity,
	}
}

// ToListInput maps the bound query string.
func ToListInput(q ListQuery) catalogtypes.ListAnimalsInput {
	return catalogtypes.ListAnimalsInput(q)
}

// ToImportInput maps an import request.
func ToImportInput(req ImportRequest) catalogtypes.ImportCatalogInput {
	input := catalogtypes.ImportCatalogInput{
		Source:         req.Source,
		IdempotencyKey: req.IdempotencyKey,
		Animals:        make([]catalogtypes.UpsertAnimalInput, 0, len(req.Animals)),
	}
	if input.Source == "" {
		input.Source = "api"
	}
	for _, a := range req.Animals {
		input.Animals = append(input.Animals, ToUpsertInput(a))
	}
	return input
}

// FromDomainAnimal converts a listing to its transport shape.
func FromDomainAnimal(a *domain.Animal) Animal {
	if a == nil {
		return Animal{}
	}
	return Animal{
		ID:             a.ID,
		Name:           a.Name,
		Species:        a.Species,
		Category:       string(a.Category),
		CategoryLabel:  a.Category.Label(),
		Price:          FormatPrice(a.Price),
		ImageURL:       a.ImageURL,
		Description:    a.Description,
		CareLevel:      string(a.CareLevel),
		CareLevelLabel: a.CareLevel.Label(),
		Size:           string(a.Size),
		SizeLabel:      a.Size.Label(),
		Lifespan:       a.Lifespan,
		Habitat:        a.Habitat,
		Diet:           a.Diet,
		InStock:        a.InStock,
		StockQuantity:  a.StockQuantity,
		Purchasable:    a.Purchasable(),
	}
}

// FromProjection adds persistence metadata to the transport shape.
func FromProjection(p *catalogtypes.AnimalProjection) Animal {
	if p == nil {
		return Animal{}
	}
	out := FromDomainAnimal(p.Entity)
	out.CreatedAt = p.Metadata.CreatedAt
	out.UpdatedAt = p.Metadata.UpdatedAt
	return out
}

// FromPage converts a search result.
func FromPage(page *catalogtypes.AnimalPage) AnimalList {
	out := AnimalList{Items: []Animal{}, ActiveFilters: []ActiveFilter{}}
	if page == nil {
		return out
	}
	for _, item := range page.Items {
		out.Items = append(out.Items, FromProjection(item))
	}
	for _, f := range page.Active {
		out.ActiveFilters = append(out.ActiveFilters, ActiveFilter{Field: f.Field, Label: f.Label})
	}
	out.Total = page.Total
	return out
}

// FromFilterOptions converts the sidebar options.
func FromFilterOptions(o *catalogtypes.FilterOptions) FilterOptions {
	if o == nil {
		return FilterOptions{}
	}
	return FilterOptions{
		Categories:  options(o.Categories),
		CareLevels:  options(o.CareLevels),
		Sizes:       options(o.Sizes),
		PriceRanges: options(o.PriceRanges),
	}
}

// FromImportResult converts an import summary.
func FromImportResult(r *catalogtypes.ImportResult) ImportResponse {
	out := ImportResponse{Imported: []string{}, Rejected: []ImportRejection{}}
	if r == nil {
		return out
	}
	out.Source = r.Source
	out.Replayed = r.Replayed
	out.Imported = append(out.Imported, r.Imported...)
	for _, rej := range r.Rejected {
		out.Rejected = append(out.Rejected, ImportRejection{Index: rej.Index, ID: rej.ID, Reason: rej.Reason, Fields: rej.Fields})
	}
	return out
}

func options(in []catalogtypes.Option) []Option {
	out := make([]Option, 0, len(in))
	for _, o := range in {
		out = append(out, Option{Value: o.Value, Label: o.Label})
	}
	return out
}
