package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

const tracerName = "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) List(ctx context.Context, input catalogtypes.ListAnimalsInput) (*catalogtypes.AnimalPage, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.List", trace.WithAttributes(
		attribute.String("catalog.filter.category", input.Category),
		attribute.String("catalog.filter.care_level", input.CareLevel),
		attribute.String("catalog.filter.size", input.Size),
		attribute.String("catalog.filter.price_range", input.PriceRange),
		attribute.String("catalog.search", input.Search),
	))
	defer span.End()

	s.logInfo(ctx, "listing animals", slog.String("category", input.Category), slog.String("search", input.Search))
	result, err := s.inner.List(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list animals")
	}
	span.SetAttributes(attribute.Int("catalog.results", result.Total))
	s.metrics.recordSearch(ctx, len(result.Active))
	return result, nil
}

func (s *Service) GetByID(ctx context.Context, input catalogtypes.AnimalIdentifier) (*catalogtypes.AnimalProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetByID", trace.WithAttributes(attribute.String("animal.id", input.ID)))
	defer span.End()

	result, err := s.inner.GetByID(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load animal", slog.String("animal.id", input.ID))
	}
	return result, nil
}

func (s *Service) Upsert(ctx context.Context, input catalogtypes.UpsertAnimalInput) (*catalogtypes.AnimalProjection, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Upsert", trace.WithAttributes(attribute.String("animal.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "upserting animal", slog.String("animal.id", input.ID))
	result, err := s.inner.Upsert(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to upsert animal", slog.String("animal.id", input.ID))
	}
	s.metrics.recordUpserted(ctx, string(result.Entity.Category))
	s.logInfo(ctx, "animal upserted", slog.String("animal.id", result.Entity.ID), slog.String("category", string(result.Entity.Category)))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, input catalogtypes.AnimalIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Delete", trace.WithAttributes(attribute.String("animal.id", input.ID)))
	defer span.End()

	s.logInfo(ctx, "deleting animal", slog.String("animal.id", input.ID))
	if err := s.inner.Delete(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to delete animal", slog.String("animal.id", input.ID))
	}
	s.logInfo(ctx, "animal deleted", slog.String("animal.id", input.ID))
	return nil
}

func (s *Service) Import(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Import", trace.WithAttributes(
		attribute.String("catalog.import.source", input.Source),
		attribute.Int("catalog.import.records", len(input.Animals)),
	))
	defer span.End()

	s.logInfo(ctx, "importing catalog", slog.String("source", input.Source), slog.Int("records", len(input.Animals)))
	result, err := s.inner.Import(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to import catalog", slog.String("source", input.Source))
	}
	span.SetAttributes(
		attribute.Int("catalog.import.imported", len(result.Imported)),
		attribute.Int("catalog.import.rejected", len(result.Rejected)),
		attribute.Bool("catalog.import.replayed", result.Replayed),
	)
	s.metrics.recordImported(ctx, len(result.Imported), len(result.Rejected))
	for _, r := range result.Rejected {
		s.logWarn(ctx, "catalog record rejected",
			slog.Int("index", r.Index), slog.String("animal.id", r.ID), slog.String("reason", r.Reason))
	}
	s.logInfo(ctx, "catalog imported", slog.Int("imported", len(result.Imported)), slog.Int("rejected", len(result.Rejected)), slog.Bool("replayed", result.Replayed))
	return result, nil
}

func (s *Service) Filters(ctx context.Context) (*catalogtypes.FilterOptions, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Filters")
	defer span.End()

	result, err := s.inner.Filters(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build filter options")
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	searches metric.Int64Counter
	upserted metric.Int64Counter
	imported metric.Int64Counter
	rejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	searches, _ := m.Int64Counter("catalog.service.searches", metric.WithDescription("Number of catalog searches"))
	upserted, _ := m.Int64Counter("catalog.service.animals_upserted", metric.WithDescription("Number of listings created or replaced"))
	imported, _ := m.Int64Counter("catalog.service.records_imported", metric.WithDescription("Number of catalog records imported"))
	rejected, _ := m.Int64Counter("catalog.service.records_rejected", metric.WithDescription("Number of catalog records rejected during import"))
	return serviceMetrics{searches: searches, upserted: upserted, imported: imported, rejected: rejected}
}

func (m serviceMetrics) recordSearch(ctx context.Context, activeFilters int) {
	if m.searches != nil {
		m.searches.Add(ctx, 1, metric.WithAttributes(attribute.Int("catalog.active_filters", activeFilters)))
	}
}

func (m serviceMetrics) recordUpserted(ctx context.Context, category string) {
	if m.upserted != nil {
		m.upserted.Add(ctx, 1, metric.WithAttributes(attribute.String("animal.category", category)))
	}
}

func (m serviceMetrics) recordImported(ctx context.Context, imported, rejected int) {
	if m.imported != nil {
		m.imported.Add(ctx, int64(imported))
	}
	if m.rejected != nil {
		m.rejected.Add(ctx, int64(rejected))
	}
}

var _ catalogports.Service = (*Service)(nil)
