package commands

import (
	"context"
	"time"
)

// MarkShipmentReturnedCommandHandler handles returns to sender.
// The aggregate rejects returns of delivered or already returned shipments;
// the handler runs the read-modify-write cycle inside one transaction.
type MarkShipmentReturnedCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewMarkShipmentReturnedCommandHandler creates a handler for returns.
func NewMarkShipmentReturnedCommandHandler(uowFactory ShipmentUoWFactory) MarkShipmentReturnedCommandHandler {
	return MarkShipmentReturnedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the return command.
// Persists the returned status, the return info and the appended history
// entry together.
func (h *MarkShipmentReturnedCommandHandler) Handle(ctx context.Context, cmd MarkShipmentReturnedCommand) error {
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

	if err = aggregate.MarkReturned(cmd.Reason(), cmd.ReturnLocation(), cmd.NewDeliveryAttempt(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
