package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
)

// RateRefresher periodically refreshes the rate cache so requests rarely hit
// the refresh-on-miss path.
type RateRefresher struct {
	cache    portssvc.RateCacheRefresherSvc
	interval time.Duration
	logger   *slog.Logger
}

// NewRateRefresher creates a refresher. A non-positive interval disables it.
func NewRateRefresher(cache portssvc.RateCacheRefresherSvc, interval time.Duration, logger *slog.Logger) *RateRefresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateRefresher{cache: cache, interval: interval, logger: logger}
}

// Run refreshes once immediately, then on every tick until ctx is done.
func (r *RateRefresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("Background rate refresh disabled")
		return
	}

	r.refreshOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Background rate refresh stopped")
			return
		case <-ticker.C:
			r.refreshOnce(ctx)
		}
	}
}

func (r *RateRefresher) refreshOnce(ctx context.Context) {
	result := r.cache.Refresh(ctx)
	if !result.Success {
		r.logger.Warn("Background rate refresh failed", slog.Any("error", result.Err))
		return
	}
	r.logger.Debug("Background rate refresh succeeded", slog.Any("updated", result.Updated))
}
