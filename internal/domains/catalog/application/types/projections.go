package types

import (
	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	"github.com/Apurer/exotica-pets/internal/shared/projection"
)

// AnimalProjection transports a listing together with its persistence metadata.
type AnimalProjection = projection.Projection[*domain.Animal]

// AnimalPage is the result of a filtered catalog search.
type AnimalPage struct {
	Items  []*AnimalProjection
	Total  int
	Active []domain.ActiveFilter
}

// ImportRejection explains why one record of a batch was skipped.
type ImportRejection struct {
	Index  int
	ID     string
	Reason string
	Fields map[string]string
}

// ImportResult summarizes a catalog import.
type ImportResult struct {
	Source   string
	Imported []string
	Rejected []ImportRejection
	// Replayed is set when the outcome was served from the import ledger.
	Replayed bool
}

// Option is one selectable value in the filter sidebar.
type Option struct {
	Value string
	Label string
}

// FilterOptions lists every value the sidebar can offer.
type FilterOptions struct {
	Categories  []Option
	CareLevels  []Option
	Sizes       []Option
	PriceRanges []Option
}
