package commands

import (
	"context"
	"errors"
	"time"

	"shipping/internal/pkg/errs"
)

// deliveredRetryAttempts bounds how often a losing delivery confirmation
// re-reads the shipment after an optimistic concurrency conflict.
const deliveredRetryAttempts = 3

// MarkShipmentDeliveredCommandHandler handles delivery confirmations.
//
// When two confirmations race, the optimistic version check lets exactly one
// commit. The loser re-reads the shipment and retries: if the winner already
// delivered it, the retry fails with "already delivered" and the first
// confirmation stays untouched.
type MarkShipmentDeliveredCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewMarkShipmentDeliveredCommandHandler creates a handler for delivery confirmations.
func NewMarkShipmentDeliveredCommandHandler(uowFactory ShipmentUoWFactory) MarkShipmentDeliveredCommandHandler {
	return MarkShipmentDeliveredCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery confirmation command.
// Sets the delivered status, the actual delivery time and the confirmation
// record in one transaction, so no partially confirmed shipment is ever
// visible. Version conflicts are retried against fresh state.
func (h *MarkShipmentDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkShipmentDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < deliveredRetryAttempts; attempt++ {
		lastErr = h.confirm(ctx, cmd)
		if !errors.Is(lastErr, errs.ErrVersionConflict) {
			return lastErr
		}
	}
	return lastErr
}

func (h *MarkShipmentDeliveredCommandHandler) confirm(ctx context.Context, cmd MarkShipmentDeliveredCommand) error {
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

	if err = aggregate.MarkDelivered(cmd.ConfirmedBy(), cmd.Method(), time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
