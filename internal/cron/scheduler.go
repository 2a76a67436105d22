// Package cron runs the background sweep that finalizes abandoned
// payment attempts. A transaction left in initiated past the
// configured TTL is marked failed; the record itself is kept so a
// late callback is still visible in lookups.
package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"cartflow/internal/store"
)

// Scheduler manages the periodic jobs.
type Scheduler struct {
	cron   *cron.Cron
	txns   store.TransactionStore
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a scheduler sweeping transactions older than ttl.
func New(txns store.TransactionStore, ttl time.Duration, logger *zap.Logger) *Scheduler {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		txns:   txns,
		ttl:    ttl,
		logger: logger,
	}
}

// Start registers and starts all cron jobs.
func (s *Scheduler) Start() {
	// Expire stale initiated transactions - every 5 minutes
	s.cron.AddFunc("0 */5 * * * *", func() {
		s.logger.Debug("Running: expire stale transactions")
		s.ExpireStale(context.Background())
	})

	s.cron.Start()
}

// Stop stops the scheduler; the returned context is done once running
// jobs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// ExpireStale finalizes initiated transactions older than the TTL.
// The compare-and-swap loses to any callback that lands first, which
// is the ordering we want.
func (s *Scheduler) ExpireStale(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.ttl)

	stale, err := s.txns.ListInitiatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("stale transaction listing failed", zap.Error(err))
		return
	}

	for _, rec := range stale {
		swapped, err := s.txns.CompareAndSwapStatus(ctx, rec.OrderNo, store.StatusInitiated, store.StatusFailed, "")
		if err != nil {
			s.logger.Warn("stale transaction expiry failed",
				zap.String("order_no", rec.OrderNo), zap.Error(err))
			continue
		}
		if swapped {
			s.logger.Info("expired stale transaction",
				zap.String("order_no", rec.OrderNo),
				zap.Time("created_at", rec.CreatedAt))
		}
	}
}
