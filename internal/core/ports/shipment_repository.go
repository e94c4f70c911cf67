package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Provides methods for storing, retrieving, and updating shipments together
// with their append-only history.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// Fails with an already-exists error when the order reference or the
	// tracking number is already taken.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate using an
	// optimistic version check. Fails with a version conflict error when the
	// stored row changed since the aggregate was read; new history entries
	// are written in the same transaction as the row update.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier,
	// history included, in recorded order.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByOrderID retrieves the shipment fulfilling the given order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error)
}
