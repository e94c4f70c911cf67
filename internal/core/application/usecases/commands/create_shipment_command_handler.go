package commands

import (
	"context"
	"fmt"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// CreateShipmentCommandHandler handles the business logic for shipment
// registration. New shipments start in "preparing" status with an empty
// history.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, carriers)
//	cmd, _ := NewCreateShipmentCommand(kernel.NewUUID(), orderID, params)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("shipment creation failed: %w", err)
//	}
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	carriers   shipment.CarrierDirectory
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
// Requires a ShipmentUoWFactory for transactional persistence and the
// configured carrier directory for carrier validation.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	carriers shipment.CarrierDirectory,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		carriers:   carriers,
	}
}

// Handle processes the shipment creation command.
// Rejects carriers outside the configured directory, then persists the new
// shipment; the one-shipment-per-order and unique-tracking-number rules are
// enforced by the repository and surface as already-exists errors.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !h.carriers.Contains(cmd.Carrier().Name()) {
		return errs.NewValueIsInvalidErrorWithCause("carrier",
			fmt.Errorf("%q is not a supported carrier", cmd.Carrier().Name()))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(),
		cmd.OrderID(),
		cmd.Carrier(),
		cmd.Tracking(),
		cmd.Schedule(),
		cmd.Address(),
		cmd.Cost(),
		cmd.Options(),
	)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
