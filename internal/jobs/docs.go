// Package jobs provides scheduled background tasks for the shipping system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the shipping service.
//
// # Available Jobs
//
// 1. DelayedShipmentSweepJob - Runs every minute to find shipments past their
// estimated delivery without a confirmation and report them
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dueBeforeHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep job uses the cron expression "* * * * *" which means it runs
// every minute. Delay detection is a reporting concern, so a minute of lag
// is acceptable.
//
// # Error Handling
//
// - Sweep job logs query failures and keeps running on its schedule
// - Failed job starts will stop any already running jobs
package jobs
