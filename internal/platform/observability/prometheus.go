package observability

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry returns a registry preloaded with process and Go runtime collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return reg
}

// MetricsHandler serves the registry in the Prometheus exposition format.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// RegisterActiveCarts publishes the number of open cart sessions as a gauge sampled on scrape.
func RegisterActiveCarts(reg prometheus.Registerer, count func(ctx context.Context) (int, error), logger *slog.Logger) error {
	gauge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "active_sessions",
		Help:      "Number of cart sessions currently held in memory.",
	}, func() float64 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		n, err := count(ctx)
		if err != nil {
			if logger != nil {
				logger.Warn("failed to count active carts", slog.String("error", err.Error()))
			}
			return 0
		}
		return float64(n)
	})
	return reg.Register(gauge)
}
