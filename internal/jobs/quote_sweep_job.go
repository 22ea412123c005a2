package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// expiredPurger is the part of the in-memory cache the sweep needs.
type expiredPurger interface {
	PurgeExpired() int
	Len() int
}

// QuoteSweepJob evicts expired quotes from the in-memory cache. Expired
// entries are already invisible to reads; the sweep only reclaims their
// memory. The redis backend expires keys by TTL and needs no sweeping.
type QuoteSweepJob struct {
	cache  expiredPurger
	cron   *cron.Cron
	logger *slog.Logger
}

// NewQuoteSweepJob creates a sweep job over the given cache.
func NewQuoteSweepJob(cache expiredPurger, logger *slog.Logger) *QuoteSweepJob {
	return &QuoteSweepJob{
		cache:  cache,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "quote_sweep_job"),
	}
}

// Start begins the sweep job to run at the top of every minute.
func (j *QuoteSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		purged := j.cache.PurgeExpired()
		if purged > 0 {
			j.logger.InfoContext(ctx, "Purged expired quotes", "purged", purged, "remaining", j.cache.Len())
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Quote sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *QuoteSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Quote sweep job stopped")
}
