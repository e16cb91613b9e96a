package application

import (
	"context"
	"errors"
	"strconv"
	"strings"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/domain"
	"github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo   ports.Repository
	ledger ports.ImportLedger
}

// Option customizes the catalog service.
type Option func(*Service)

// WithImportLedger enables idempotent imports keyed by ImportCatalogInput.IdempotencyKey.
func WithImportLedger(ledger ports.ImportLedger) Option {
	return func(s *Service) {
		s.ledger = ledger
	}
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns the listings matching the sidebar and search criteria.
func (s *Service) List(ctx context.Context, input catalogtypes.ListAnimalsInput) (*catalogtypes.AnimalPage, error) {
	filter, err := input.ToFilter()
	if err != nil {
		return nil, mapError(err)
	}
	items, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return &catalogtypes.AnimalPage{Items: items, Total: len(items), Active: filter.Active()}, nil
}

// GetByID loads the detail view of one listing.
func (s *Service) GetByID(ctx context.Context, input catalogtypes.AnimalIdentifier) (*catalogtypes.AnimalProjection, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, mapError(domain.ErrEmptyID)
	}
	projection, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// Upsert creates or replaces a listing.
func (s *Service) Upsert(ctx context.Context, input catalogtypes.UpsertAnimalInput) (*catalogtypes.AnimalProjection, error) {
	animal, err := input.ToDomainAnimal()
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, animal)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, input catalogtypes.AnimalIdentifier) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(input.ID)); err != nil {
		return mapError(err)
	}
	return nil
}

// Import validates each record independently; invalid records are reported, not fatal.
// Repository failures abort the batch.
func (s *Service) Import(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error) {
	key := strings.TrimSpace(input.IdempotencyKey)
	if key == "" || s.ledger == nil {
		return s.importRecords(ctx, input)
	}
	hash, err := FingerprintImport(input)
	if err != nil {
		return nil, err
	}
	existing, err := s.ledger.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return replay(existing, hash)
	}
	result, err := s.importRecords(ctx, input)
	if err != nil {
		return result, err
	}
	if _, err := s.ledger.Save(ctx, ports.ImportRecord{
		Key:           key,
		RequestHash:   hash,
		Source:        input.Source,
		Imported:      result.Imported,
		RejectedCount: len(result.Rejected),
	}); err != nil {
		if errors.Is(err, ports.ErrImportConflict) {
			return nil, err
		}
		return result, err
	}
	return result, nil
}

func (s *Service) importRecords(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error) {
	result := &catalogtypes.ImportResult{Source: input.Source}
	seen := make(map[string]int, len(input.Animals))
	for i, record := range input.Animals {
		animal, err := record.ToDomainAnimal()
		if err != nil {
			result.Rejected = append(result.Rejected, rejection(i, record.ID, err))
			continue
		}
		if first, dup := seen[animal.ID]; dup {
			result.Rejected = append(result.Rejected, catalogtypes.ImportRejection{
				Index:  i,
				ID:     animal.ID,
				Reason: "duplicate id, first seen at record " + strconv.Itoa(first),
			})
			continue
		}
		seen[animal.ID] = i
		if _, err := s.repo.Save(ctx, animal); err != nil {
			return result, mapError(err)
		}
		result.Imported = append(result.Imported, animal.ID)
	}
	return result, nil
}

// Filters returns the closed sets offered by the sidebar.
func (s *Service) Filters(_ context.Context) (*catalogtypes.FilterOptions, error) {
	options := &catalogtypes.FilterOptions{}
	for _, c := range domain.AllCategories() {
		options.Categories = append(options.Categories, catalogtypes.Option{Value: string(c), Label: c.Label()})
	}
	for _, l := range domain.AllCareLevels() {
		options.CareLevels = append(options.CareLevels, catalogtypes.Option{Value: string(l), Label: l.Label()})
	}
	for _, sz := range domain.AllSizes() {
		options.Sizes = append(options.Sizes, catalogtypes.Option{Value: string(sz), Label: sz.Label()})
	}
	for _, r := range domain.PriceRangePresets() {
		options.PriceRanges = append(options.PriceRanges, catalogtypes.Option{Value: r.Key, Label: r.Label})
	}
	return options, nil
}

func replay(record *ports.ImportRecord, hash string) (*catalogtypes.ImportResult, error) {
	if record.RequestHash != hash {
		return nil, ports.ErrImportConflict
	}
	return &catalogtypes.ImportResult{
		Source:   record.Source,
		Imported: append([]string(nil), record.Imported...),
		Replayed: true,
	}, nil
}

func rejection(index int, id string, err error) catalogtypes.ImportRejection {
	r := catalogtypes.ImportRejection{Index: index, ID: strings.TrimSpace(id), Reason: err.Error()}
	var recordErr *catalogtypes.RecordError
	if errors.As(err, &recordErr) {
		r.Fields = recordErr.Fields
	}
	return r
}

var _ ports.Service = (*Service)(nil)
