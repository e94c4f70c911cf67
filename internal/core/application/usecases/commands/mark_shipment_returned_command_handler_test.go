package commands_test

import (
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkShipmentReturnedCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()
	stored := storedShipment(t, shipmentID)
	retry := time.Now().UTC().Add(48 * time.Hour)
	cmd, err := commands.NewMarkShipmentReturnedCommand(shipmentID, "address unknown", "Rotterdam depot", &retry)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, shipmentID).Return(stored, nil).Once(),
		repo.On("Update", mock.Anything, stored).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkShipmentReturnedCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, shipment.Returned, stored.Status())
	require.NotNil(t, stored.ReturnInfo())
	assert.Equal(t, "address unknown", stored.ReturnInfo().Reason())
	assert.Equal(t, "Rotterdam depot", stored.ReturnInfo().ReturnLocation())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestMarkShipmentReturnedCommandHandler_Handle_DeliveredShipment(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()
	stored := storedShipment(t, shipmentID)
	require.NoError(t, stored.MarkDelivered("Jane Smith", shipment.ConfirmationSignature, time.Now().UTC()))

	cmd, err := commands.NewMarkShipmentReturnedCommand(shipmentID, "damaged", "", nil)
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, shipmentID).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkShipmentReturnedCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.IsType(t, &errs.InvalidStateError{}, err)
	assert.Equal(t, shipment.Delivered, stored.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNewMarkShipmentReturnedCommand(t *testing.T) {
	t.Run("should require a reason", func(t *testing.T) {
		_, err := commands.NewMarkShipmentReturnedCommand(kernel.NewUUID(), "", "", nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail validation for zero-value command", func(t *testing.T) {
		var cmd commands.MarkShipmentReturnedCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrMarkShipmentReturnedCommandIsNotConstructed, err)
	})
}
