package api

import (
	"context"
	"log/slog"
	"time"

	cartports "github.com/Apurer/exotica-pets/internal/domains/cart/ports"
)

// purgeIdleCarts drops abandoned cart sessions every interval until ctx is done.
func purgeIdleCarts(ctx context.Context, service cartports.Service, interval, idleTTL time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := service.PurgeIdle(ctx, idleTTL); err != nil && ctx.Err() == nil {
				logger.Warn("idle cart purge failed", slog.String("error", err.Error()))
			}
		}
	}
}
