package db

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger removes soft-deleted cards older than retention.
type Purger interface {
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

// StartSoftDeleteCleaner purges expired soft-deleted cards every interval
// until ctx is cancelled. A non-positive interval disables it.
func StartSoftDeleteCleaner(
	ctx context.Context,
	purger Purger,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := purger.PurgeExpired(ctx, retention)
				if err != nil {
					log.Error("failed to clean soft-deleted cards", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("cleaned soft-deleted cards", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
