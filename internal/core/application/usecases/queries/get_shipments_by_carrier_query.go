package queries

import (
	"errors"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentsByCarrierQueryIsNotConstructed = errors.New(
	"GetShipmentsByCarrierQuery must be created via NewGetShipmentsByCarrierQuery constructor",
)

// GetShipmentsByCarrierQuery retrieves shipment summaries handled by one
// carrier, matched by exact carrier name.
type GetShipmentsByCarrierQuery struct {
	carrierName string

	guard guard.ConstructorGuard
}

// NewGetShipmentsByCarrierQuery creates a carrier list query.
func NewGetShipmentsByCarrierQuery(carrierName string) (GetShipmentsByCarrierQuery, error) {
	if carrierName == "" {
		return GetShipmentsByCarrierQuery{}, errs.NewValueIsRequiredError("carrier")
	}

	return GetShipmentsByCarrierQuery{
		carrierName: carrierName,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsByCarrierQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsByCarrierQueryIsNotConstructed)
}

// CarrierName returns the carrier to filter on.
func (q GetShipmentsByCarrierQuery) CarrierName() string {
	return q.carrierName
}
