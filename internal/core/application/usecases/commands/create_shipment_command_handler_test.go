package commands_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testCarrierDirectory() shipment.CarrierDirectory {
	return shipment.NewCarrierDirectory([]string{"DHL", "PostNL", "UPS"})
}

func TestCreateShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), validParams())
	require.NoError(t, err)

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, testCarrierDirectory())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_PersistsPreparingShipment(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, kernel.NewUUID(), validParams())
	require.NoError(t, err)

	var added *shipment.Shipment
	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).
			Run(func(args mock.Arguments) {
				added = args.Get(1).(*shipment.Shipment)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, testCarrierDirectory())
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, added)
	assert.True(t, added.ID().IsEqual(shipmentID))
	assert.Equal(t, shipment.Preparing, added.Status())
	assert.Equal(t, 0, added.History().Len())
	assert.Equal(t, int64(1750), added.Cost().Total())
}

func TestCreateShipmentCommandHandler_Handle_UnknownCarrier(t *testing.T) {
	ctx := t.Context()
	params := validParams()
	params.CarrierName = "Pigeon Post"
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), params)
	require.NoError(t, err)

	factory := new(MockShipmentUoWFactory)

	h := commands.NewCreateShipmentCommandHandler(factory, testCarrierDirectory())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	assert.Contains(t, err.Error(), "Pigeon Post")
	factory.AssertNotCalled(t, "Create")
}

func TestCreateShipmentCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateShipmentCommand{} // not constructed properly
	factory := new(MockShipmentUoWFactory)
	h := commands.NewCreateShipmentCommandHandler(factory, testCarrierDirectory())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateShipmentCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), validParams())
	require.NoError(t, err)

	duplicate := errs.NewObjectAlreadyExistsError("trackingNumber", "JD014600003RU")

	repo := new(MockShipmentRepository)
	uow := new(MockShipmentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(repo).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(duplicate).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateShipmentCommandHandler(factory, testCarrierDirectory())
	err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectAlreadyExists)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateShipmentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), kernel.NewUUID(), validParams())
	require.NoError(t, err)

	uow := new(MockShipmentUoW)
	factory := new(MockShipmentUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateShipmentCommandHandler(factory, testCarrierDirectory())
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
}
