package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrMarkShipmentDeliveredCommandIsNotConstructed = errors.New(
	"MarkShipmentDeliveredCommand must be created via NewMarkShipmentDeliveredCommand constructor",
)

// MarkShipmentDeliveredCommand represents a delivery confirmation request.
// This is the only write path that can move a shipment into delivered status.
type MarkShipmentDeliveredCommand struct {
	shipmentID  kernel.UUID
	confirmedBy string
	method      shipment.ConfirmationMethod

	guard guard.ConstructorGuard
}

// NewMarkShipmentDeliveredCommand creates a delivery confirmation command.
// An empty method string defaults to signature confirmation.
func NewMarkShipmentDeliveredCommand(
	shipmentID kernel.UUID,
	confirmedBy string,
	method string,
) (MarkShipmentDeliveredCommand, error) {
	cmd := MarkShipmentDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setConfirmedBy(confirmedBy),
		cmd.setMethod(method),
	); err != nil {
		return MarkShipmentDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkShipmentDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkShipmentDeliveredCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to confirm.
func (c MarkShipmentDeliveredCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// ConfirmedBy returns the name of the party who accepted the parcel.
func (c MarkShipmentDeliveredCommand) ConfirmedBy() string {
	return c.confirmedBy
}

// Method returns the confirmation method.
func (c MarkShipmentDeliveredCommand) Method() shipment.ConfirmationMethod {
	return c.method
}

func (c *MarkShipmentDeliveredCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *MarkShipmentDeliveredCommand) setConfirmedBy(confirmedBy string) error {
	if confirmedBy == "" {
		return errs.NewValueIsRequiredError("confirmedBy")
	}
	c.confirmedBy = confirmedBy
	return nil
}

func (c *MarkShipmentDeliveredCommand) setMethod(method string) error {
	if method == "" {
		c.method = shipment.ConfirmationSignature
		return nil
	}

	parsed, err := shipment.ConfirmationMethodFromString(method)
	if err != nil {
		return err
	}
	c.method = parsed
	return nil
}
