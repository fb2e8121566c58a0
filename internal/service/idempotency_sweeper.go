package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/josh-kwaku/pos-ledger/internal/metrics"
)

// IdempotencySweeper periodically deletes expired idempotency cache entries.
type IdempotencySweeper struct {
	cache    idempotencyCleaner
	logger   *slog.Logger
	interval time.Duration
}

func NewIdempotencySweeper(cache idempotencyCleaner, logger *slog.Logger, interval time.Duration) *IdempotencySweeper {
	return &IdempotencySweeper{cache: cache, logger: logger, interval: interval}
}

// Start blocks until ctx is cancelled.
func (s *IdempotencySweeper) Start(ctx context.Context) {
	s.logger.Info("idempotency sweeper started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("idempotency sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *IdempotencySweeper) sweep(ctx context.Context) {
	n, err := s.cache.CleanExpired(ctx)
	if err != nil {
		s.logger.Error("failed to clean expired idempotency entries", "error", err)
		return
	}
	if n > 0 {
		metrics.IdempotencyEntriesSwept.Add(float64(n))
		s.logger.Info("expired idempotency entries removed", "count", n)
	}
}
