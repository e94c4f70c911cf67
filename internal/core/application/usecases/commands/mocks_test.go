package commands_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

// validParams builds a complete, valid parameter set for shipment creation.
func validParams() commands.CreateShipmentParams {
	return commands.CreateShipmentParams{
		CarrierName:       "DHL",
		CarrierCode:       "dhl",
		CarrierPhone:      "+49 228 767676",
		TrackingNumber:    "JD014600003RU",
		TrackingURL:       "https://track.example.com/JD014600003RU",
		EstimatedDelivery: time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC),
		TimeSlot:          "anytime",
		RecipientName:     "Jane Smith",
		RecipientPhone:    "+31 6 1234 5678",
		Street:            "Keizersgracht 1",
		City:              "Amsterdam",
		ZipCode:           "1015 CD",
		Country:           "NL",
		AbsenteeHandling:  "redelivery",
		CostBase:          1500,
		CostAdditional:    250,
		DeliveryMethod:    "express",
		SpecialHandling:   []string{"fragile"},
		InsuranceEnabled:  true,
		InsuranceAmount:   50000,
	}
}

// storedShipment builds an aggregate as the repository would return it.
func storedShipment(t *testing.T, id kernel.UUID) *shipment.Shipment {
	t.Helper()

	cmd, err := commands.NewCreateShipmentCommand(id, kernel.NewUUID(), validParams())
	require.NoError(t, err)

	aggregate, err := shipment.NewShipment(
		cmd.ShipmentID(), cmd.OrderID(),
		cmd.Carrier(), cmd.Tracking(), cmd.Schedule(),
		cmd.Address(), cmd.Cost(), cmd.Options(),
	)
	require.NoError(t, err)
	return aggregate
}
