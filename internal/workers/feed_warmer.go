package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// GlobalRefresher re-primes the global feed cache.
type GlobalRefresher interface {
	RefreshGlobal(ctx context.Context) error
}

// FeedWarmer keeps the first page of the global feed warm so the common read
// path stays on Redis between invalidations.
type FeedWarmer struct {
	Feed     GlobalRefresher
	Interval time.Duration
	Logger   *zap.Logger
}

func NewFeedWarmer(feed GlobalRefresher, interval time.Duration, logger *zap.Logger) *FeedWarmer {
	return &FeedWarmer{
		Feed:     feed,
		Interval: interval,
		Logger:   logger,
	}
}

// Run refreshes the cache on a fixed interval until ctx is cancelled.
func (w *FeedWarmer) Run(ctx context.Context) {
	w.Logger.Info("feed warmer started", zap.Duration("interval", w.Interval))

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("feed warmer stopped")
			return
		case <-ticker.C:
			if err := w.Feed.RefreshGlobal(ctx); err != nil {
				w.Logger.Error("feed warm failed", zap.Error(err))
			}
		}
	}
}
