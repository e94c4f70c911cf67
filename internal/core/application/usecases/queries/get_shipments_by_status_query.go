package queries

import (
	"errors"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentsByStatusQueryIsNotConstructed = errors.New(
	"GetShipmentsByStatusQuery must be created via NewGetShipmentsByStatusQuery constructor",
)

// GetShipmentsByStatusQuery retrieves shipment summaries in one lifecycle
// status, for dashboards and operational monitoring.
//
// Example:
//
//	query, err := NewGetShipmentsByStatusQuery("in_transit")
//	if err != nil {
//	    return err
//	}
//
//	summaries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list shipments: %w", err)
//	}
//	fmt.Printf("%d shipments in transit\n", len(summaries))
type GetShipmentsByStatusQuery struct {
	status shipment.Status

	guard guard.ConstructorGuard
}

// NewGetShipmentsByStatusQuery creates a status list query from the wire
// string representation of the status.
func NewGetShipmentsByStatusQuery(status string) (GetShipmentsByStatusQuery, error) {
	parsed, err := shipment.StatusFromString(status)
	if err != nil {
		return GetShipmentsByStatusQuery{}, err
	}

	return GetShipmentsByStatusQuery{
		status: parsed,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsByStatusQueryIsNotConstructed)
}

// Status returns the status to filter on.
func (q GetShipmentsByStatusQuery) Status() shipment.Status {
	return q.status
}
