package jobs

import (
	"fmt"
	"log/slog"

	"shipping/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	delayedShipmentSweepJob *DelayedShipmentSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	dueBeforeHandler queries.GetShipmentsDueBeforeQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		delayedShipmentSweepJob: NewDelayedShipmentSweepJob(dueBeforeHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.delayedShipmentSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start delayed shipment sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.delayedShipmentSweepJob.Stop()
}
