package commands

import (
	"context"
	"time"
)

// UpdateShipmentStatusCommandHandler handles ordinary status changes.
// The aggregate enforces the transition rules and records the history entry;
// the handler's job is the read-modify-write cycle inside one transaction.
type UpdateShipmentStatusCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewUpdateShipmentStatusCommandHandler creates a handler for status changes.
func NewUpdateShipmentStatusCommandHandler(uowFactory ShipmentUoWFactory) UpdateShipmentStatusCommandHandler {
	return UpdateShipmentStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command.
// Loads the shipment, applies the transition, and persists the new status
// together with the appended history entry. A concurrent writer makes the
// optimistic version check fail, which surfaces as a version conflict error.
func (h *UpdateShipmentStatusCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	aggregate, err := repo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(cmd.Status(), cmd.Location(), cmd.Description(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
