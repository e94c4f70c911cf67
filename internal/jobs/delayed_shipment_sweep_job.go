package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DelayedShipmentSweepJob periodically finds shipments whose promised
// delivery time has passed without a delivery confirmation and reports them.
// The sweep only reads: delay is derived from the schedule at query time and
// is never written back to the store.
type DelayedShipmentSweepJob struct {
	handler queries.GetShipmentsDueBeforeQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDelayedShipmentSweepJob creates a new sweep job.
// Uses GetShipmentsDueBeforeQueryHandler with the current time as the cutoff
// on every run.
func NewDelayedShipmentSweepJob(
	handler queries.GetShipmentsDueBeforeQueryHandler,
	logger *slog.Logger,
) *DelayedShipmentSweepJob {
	return &DelayedShipmentSweepJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "delayed_shipment_sweep_job"),
	}
}

// Start begins the sweep job to run every minute.
func (j *DelayedShipmentSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		query, err := queries.NewGetShipmentsDueBeforeQuery(time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Delayed shipment sweep failed to build query", "error", err)
			return
		}

		delayed, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Delayed shipment sweep failed", "error", err)
			return
		}

		if len(delayed) == 0 {
			return
		}

		j.logger.WarnContext(ctx, "Found delayed shipments", "count", len(delayed))
		for _, summary := range delayed {
			j.logger.WarnContext(ctx, "Shipment past its estimated delivery",
				"shipment_id", summary.ID,
				"tracking_number", summary.TrackingNumber,
				"carrier", summary.CarrierName,
				"status", summary.Status,
				"estimated_delivery", summary.EstimatedDelivery,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Delayed shipment sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep job.
func (j *DelayedShipmentSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Delayed shipment sweep job stopped")
}
