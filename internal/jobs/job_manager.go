package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	quoteSweepJob *QuoteSweepJob
}

// NewJobManager creates a new job manager. The sweep job may be nil: when
// the quote cache is not the in-memory backend, nothing is scheduled.
func NewJobManager(quoteSweepJob *QuoteSweepJob) *JobManager {
	return &JobManager{quoteSweepJob: quoteSweepJob}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.quoteSweepJob != nil {
		if err := jm.quoteSweepJob.Start(); err != nil {
			return fmt.Errorf("failed to start quote sweep job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.quoteSweepJob != nil {
		jm.quoteSweepJob.Stop()
	}
}
