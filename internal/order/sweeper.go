package order

import (
	"context"
	"time"

	"localbite-be/internal/logger"

	"go.uber.org/zap"
)

// Expirer is the part of Service the sweeper drives.
type Expirer interface {
	ExpireStale(ctx context.Context, before time.Time) (int, error)
}

// RunSweeper expires orders left unconfirmed for longer than ttl, checking
// every interval until ctx is cancelled.
func RunSweeper(ctx context.Context, e Expirer, ttl, interval time.Duration) {
	log := logger.FromCtx(ctx).With(zap.String("component", "order_sweeper"))
	log.Info("order sweeper started", zap.Duration("ttl", ttl), zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("order sweeper stopped")
			return
		case now := <-ticker.C:
			if _, err := e.ExpireStale(ctx, now.Add(-ttl)); err != nil {
				log.Error("sweep failed", zap.Error(err))
			}
		}
	}
}
