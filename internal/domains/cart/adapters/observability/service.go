package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	carttypes "github.com/Apurer/exotica-pets/internal/domains/cart/application/types"
	cartports "github.com/Apurer/exotica-pets/internal/domains/cart/ports"
)

const tracerName = "github.com/Apurer/exotica-pets/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
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

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
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

func (s *Service) Open(ctx context.Context) (*carttypes.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Open")
	defer span.End()

	view, err := s.inner.Open(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to open cart")
	}
	span.SetAttributes(attribute.String("cart.id", view.ID))
	s.metrics.recordOpened(ctx)
	s.logInfo(ctx, "cart opened", slog.String("cart.id", view.ID))
	return view, nil
}

func (s *Service) Get(ctx context.Context, input carttypes.CartIdentifier) (*carttypes.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Get", trace.WithAttributes(attribute.String("cart.id", input.ID)))
	defer span.End()

	view, err := s.inner.Get(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart", slog.String("cart.id", input.ID))
	}
	s.annotate(span, view)
	return view, nil
}

func (s *Service) AddItem(ctx context.Context, input carttypes.AddItemInput) (*carttypes.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem", trace.WithAttributes(
		attribute.String("cart.id", input.CartID),
		attribute.String("animal.id", input.AnimalID),
	))
	defer span.End()

	view, err := s.inner.AddItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add animal to cart",
			slog.String("cart.id", input.CartID), slog.String("animal.id", input.AnimalID))
	}
	s.annotate(span, view)
	s.metrics.recordAdded(ctx, input.AnimalID)
	s.logInfo(ctx, "animal added to cart", slog.String("cart.id", input.CartID), slog.String("animal.id", input.AnimalID),
		slog.Int("items", view.TotalItemCount), slog.String("total", view.TotalPrice.StringFixed(2)))
	return view, nil
}

func (s *Service) SetQuantity(ctx context.Context, input carttypes.SetQuantityInput) (*carttypes.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.SetQuantity", trace.WithAttributes(
		attribute.String("cart.id", input.CartID),
		attribute.String("animal.id", input.AnimalID),
		attribute.Int("cart.line.quantity", input.Quantity),
	))
	defer span.End()

	view, err := s.inner.SetQuantity(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set cart quantity",
			slog.String("cart.id", input.CartID), slog.String("animal.id", input.AnimalID), slog.Int("quantity", input.Quantity))
	}
	s.annotate(span, view)
	return view, nil
}

func (s *Service) RemoveItem(ctx context.Context, input carttypes.ItemIdentifier) (*carttypes.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveItem", trace.WithAttributes(
		attribute.String("cart.id", input.CartID),
		attribute.String("animal.id", input.AnimalID),
	))
	defer span.End()

	view, err := s.inner.RemoveItem(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to remove animal from cart",
			slog.String("cart.id", input.CartID), slog.String("animal.id", input.AnimalID))
	}
	s.annotate(span, view)
	return view, nil
}

func (s *Service) Clear(ctx context.Context, input carttypes.CartIdentifier) (*carttypes.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear", trace.WithAttributes(attribute.String("cart.id", input.ID)))
	defer span.End()

	view, err := s.inner.Clear(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to clear cart", slog.String("cart.id", input.ID))
	}
	s.logInfo(ctx, "cart cleared", slog.String("cart.id", input.ID))
	return view, nil
}

func (s *Service) Close(ctx context.Context, input carttypes.CartIdentifier) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Close", trace.WithAttributes(attribute.String("cart.id", input.ID)))
	defer span.End()

	if err := s.inner.Close(ctx, input); err != nil {
		return s.handleError(ctx, span, err, "failed to close cart", slog.String("cart.id", input.ID))
	}
	s.metrics.recordClosed(ctx, "closed", 1)
	s.logInfo(ctx, "cart closed", slog.String("cart.id", input.ID))
	return nil
}

func (s *Service) PurgeIdle(ctx context.Context, maxIdle time.Duration) (int, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.PurgeIdle", trace.WithAttributes(attribute.String("cart.idle_ttl", maxIdle.String())))
	defer span.End()

	purged, err := s.inner.PurgeIdle(ctx, maxIdle)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to purge idle carts")
	}
	span.SetAttributes(attribute.Int("cart.purged", purged))
	if purged > 0 {
		s.metrics.recordClosed(ctx, "expired", purged)
		s.logInfo(ctx, "idle carts purged", slog.Int("purged", purged), slog.Duration("idle_ttl", maxIdle))
	}
	return purged, nil
}

func (s *Service) annotate(span trace.Span, view *carttypes.CartView) {
	if view == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("cart.lines", view.DistinctItems),
		attribute.Int("cart.items", view.TotalItemCount),
		attribute.String("cart.total", view.TotalPrice.StringFixed(2)),
	)
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
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

// handleError marks the span and logs at ERROR. Unknown or expired carts log at INFO
// and leave the span status unset.
func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if errors.Is(err, cartports.ErrNotFound) {
		if span != nil {
			span.SetAttributes(attribute.Bool("cart.missing", true))
		}
		s.logInfo(ctx, "cart not found", append(attrs, slog.String("operation", msg))...)
		return err
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	opened metric.Int64Counter
	added  metric.Int64Counter
	closed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	opened, _ := m.Int64Counter("cart.service.opened", metric.WithDescription("Number of cart sessions opened"))
	added, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Number of units added to carts"))
	closed, _ := m.Int64Counter("cart.service.closed", metric.WithDescription("Number of cart sessions ended"))
	return serviceMetrics{opened: opened, added: added, closed: closed}
}

func (m serviceMetrics) recordOpened(ctx context.Context) {
	if m.opened != nil {
		m.opened.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordAdded(ctx context.Context, animalID string) {
	if m.added != nil {
		m.added.Add(ctx, 1, metric.WithAttributes(attribute.String("animal.id", animalID)))
	}
}

func (m serviceMetrics) recordClosed(ctx context.Context, reason string, n int) {
	if m.closed != nil {
		m.closed.Add(ctx, int64(n), metric.WithAttributes(attribute.String("cart.close_reason", reason)))
	}
}

var _ cartports.Service = (*Service)(nil)
