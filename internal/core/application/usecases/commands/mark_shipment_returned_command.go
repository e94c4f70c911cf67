package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrMarkShipmentReturnedCommandIsNotConstructed = errors.New(
	"MarkShipmentReturnedCommand must be created via NewMarkShipmentReturnedCommand constructor",
)

// MarkShipmentReturnedCommand represents a request to send a shipment back
// to the sender, recording why and optionally when a new delivery will be
// attempted.
type MarkShipmentReturnedCommand struct {
	shipmentID         kernel.UUID
	reason             string
	returnLocation     string
	newDeliveryAttempt *time.Time

	guard guard.ConstructorGuard
}

// NewMarkShipmentReturnedCommand creates a return command. The reason is
// required; return location and the new delivery attempt are optional.
func NewMarkShipmentReturnedCommand(
	shipmentID kernel.UUID,
	reason string,
	returnLocation string,
	newDeliveryAttempt *time.Time,
) (MarkShipmentReturnedCommand, error) {
	cmd := MarkShipmentReturnedCommand{
		returnLocation:     returnLocation,
		newDeliveryAttempt: newDeliveryAttempt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setReason(reason),
	); err != nil {
		return MarkShipmentReturnedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkShipmentReturnedCommand) Validate() error {
	return c.guard.Validate(ErrMarkShipmentReturnedCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to return.
func (c MarkShipmentReturnedCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Reason returns why the shipment is going back.
func (c MarkShipmentReturnedCommand) Reason() string {
	return c.reason
}

// ReturnLocation returns where the parcel is being held, if reported.
func (c MarkShipmentReturnedCommand) ReturnLocation() string {
	return c.returnLocation
}

// NewDeliveryAttempt returns the planned retry time, if any.
func (c MarkShipmentReturnedCommand) NewDeliveryAttempt() *time.Time {
	return c.newDeliveryAttempt
}

func (c *MarkShipmentReturnedCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *MarkShipmentReturnedCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
