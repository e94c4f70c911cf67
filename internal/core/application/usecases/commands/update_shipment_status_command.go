package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrUpdateShipmentStatusCommandIsNotConstructed = errors.New(
	"UpdateShipmentStatusCommand must be created via NewUpdateShipmentStatusCommand constructor",
)

// UpdateShipmentStatusCommand represents a request to move a shipment to a
// new lifecycle status. Whether the move is allowed is decided by the
// aggregate's transition rules, not here; the command only guarantees the
// target status is a real one.
type UpdateShipmentStatusCommand struct {
	shipmentID  kernel.UUID
	status      shipment.Status
	location    string
	description string

	guard guard.ConstructorGuard
}

// NewUpdateShipmentStatusCommand creates a status change command.
// The status comes in as a wire string; location and description are optional
// context for the history entry.
func NewUpdateShipmentStatusCommand(
	shipmentID kernel.UUID,
	status string,
	location string,
	description string,
) (UpdateShipmentStatusCommand, error) {
	cmd := UpdateShipmentStatusCommand{
		location:    location,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateShipmentStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStatusCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to update.
func (c UpdateShipmentStatusCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Status returns the target lifecycle status.
func (c UpdateShipmentStatusCommand) Status() shipment.Status {
	return c.status
}

// Location returns where the status change happened, if reported.
func (c UpdateShipmentStatusCommand) Location() string {
	return c.location
}

// Description returns the history entry description, if any.
func (c UpdateShipmentStatusCommand) Description() string {
	return c.description
}

func (c *UpdateShipmentStatusCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateShipmentStatusCommand) setStatus(status string) error {
	parsed, err := shipment.StatusFromString(status)
	if err != nil {
		return err
	}
	c.status = parsed
	return nil
}
