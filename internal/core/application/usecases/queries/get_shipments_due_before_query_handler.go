package queries

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GetShipmentsDueBeforeQueryHandler lists undelivered shipments past a
// cutoff. Not cached: the cutoff is an arbitrary timestamp, so cache keys
// would never repeat, and the sweep job wants fresh rows anyway.
type GetShipmentsDueBeforeQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentsDueBeforeQueryHandler creates a handler for due-before queries.
func NewGetShipmentsDueBeforeQueryHandler(db *gorm.DB) GetShipmentsDueBeforeQueryHandler {
	return GetShipmentsDueBeforeQueryHandler{db: db}
}

// Handle returns summaries of shipments still under way whose promised
// delivery time is before the cutoff, most overdue first. Terminal shipments
// never count as due: delivery clears the estimate and returns abandon it.
func (h GetShipmentsDueBeforeQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsDueBeforeQuery,
) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+summaryColumns+`
		FROM shipments
		WHERE estimated_delivery < ?
		  AND actual_delivery IS NULL
		  AND status NOT IN (?, ?)
		ORDER BY estimated_delivery, id
	`, query.DueBefore(), int(shipment.Delivered), int(shipment.Returned)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows, time.Now().UTC())
}
