package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
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

func buildShipment(t *testing.T, id kernel.UUID) *shipment.Shipment {
	t.Helper()

	carrier, err := shipment.NewCarrier("DHL", "dhl", shipment.NewCarrierContact("+49 228 767676", "https://www.dhl.com"))
	require.NoError(t, err)
	tracking, err := shipment.NewTracking("JD014600003RU", "https://track.example.com/JD014600003RU", "")
	require.NoError(t, err)
	schedule, err := shipment.NewSchedule(nil, time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC), shipment.TimeSlotAnytime)
	require.NoError(t, err)
	recipient, err := shipment.NewRecipient("Jane Smith", "+31 6 1234 5678")
	require.NoError(t, err)
	location, err := shipment.NewLocation("Keizersgracht 1", "Amsterdam", "1015 CD", "", "NL")
	require.NoError(t, err)
	address, err := shipment.NewAddress(recipient, location, "ring twice", shipment.AbsenteeRedelivery)
	require.NoError(t, err)
	cost, err := shipment.NewCost(1500, 250)
	require.NoError(t, err)
	insurance, err := shipment.NewInsurance(true, 50000)
	require.NoError(t, err)
	options, err := shipment.NewOptions(shipment.MethodExpress,
		[]shipment.SpecialHandling{shipment.HandlingFragile}, insurance)
	require.NoError(t, err)

	aggregate, err := shipment.NewShipment(id, kernel.NewUUID(), carrier, tracking, schedule, address, cost, options)
	require.NoError(t, err)
	return aggregate
}

func TestGetShipmentQueryHandler_Handle(t *testing.T) {
	t.Run("should map full aggregate to response", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		aggregate := buildShipment(t, id)
		at := time.Date(2025, 6, 9, 14, 0, 0, 0, time.UTC)
		require.NoError(t, aggregate.ChangeStatus(shipment.InTransit, "Utrecht hub", "", at))
		require.NoError(t, aggregate.MarkDelivered("Jane Smith", shipment.ConfirmationPhoto, at.Add(3*time.Hour)))

		repo := new(MockShipmentRepository)
		repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once()

		query, err := queries.NewGetShipmentQuery(id)
		require.NoError(t, err)

		h := queries.NewGetShipmentQueryHandler(repo)
		resp, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, resp.ID.IsEqual(id))
		assert.Equal(t, "delivered", resp.Status)
		assert.Equal(t, "DHL", resp.CarrierName)
		assert.Equal(t, "JD014600003RU", resp.TrackingNumber)
		assert.Equal(t, "express", resp.DeliveryMethod)
		assert.Equal(t, []string{"fragile"}, resp.SpecialHandling)
		assert.Equal(t, int64(1750), resp.CostTotal)
		assert.Equal(t, "photo", resp.ConfirmationMethod)
		assert.Equal(t, "Jane Smith", resp.ConfirmedBy)
		require.NotNil(t, resp.ActualDelivery)

		require.Len(t, resp.History, 2)
		assert.Equal(t, "in_transit", resp.History[0].Status)
		assert.Equal(t, "Utrecht hub", resp.History[0].Location)
		assert.Equal(t, "delivered", resp.History[1].Status)
		assert.Equal(t, "Jane Smith", resp.History[1].Signature)

		assert.False(t, resp.IsDelayed)
		require.NotNil(t, resp.DeliveryDurationDays)
		assert.Equal(t, 1, *resp.DeliveryDurationDays)

		repo.AssertExpectations(t)
	})

	t.Run("should flag delayed undelivered shipment", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()

		created := time.Now().UTC().Add(-96 * time.Hour)
		estimated := time.Now().UTC().Add(-48 * time.Hour)
		schedule, err := shipment.RestoreSchedule(nil, estimated, nil, shipment.TimeSlotAnytime)
		require.NoError(t, err)

		base := buildShipment(t, id)
		aggregate, err := shipment.RestoreShipment(shipment.Snapshot{
			ID:        id,
			OrderID:   base.OrderID(),
			Status:    shipment.InTransit,
			Carrier:   base.Carrier(),
			Tracking:  base.Tracking(),
			Schedule:  schedule,
			Address:   base.Address(),
			Cost:      base.Cost(),
			Options:   base.Options(),
			CreatedAt: created,
			UpdatedAt: created,
			Version:   2,
		})
		require.NoError(t, err)

		repo := new(MockShipmentRepository)
		repo.On("Get", mock.Anything, id).Return(aggregate, nil).Once()

		query, err := queries.NewGetShipmentQuery(id)
		require.NoError(t, err)

		h := queries.NewGetShipmentQueryHandler(repo)
		resp, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, resp.IsDelayed)
		assert.Nil(t, resp.DeliveryDurationDays)
	})

	t.Run("should pass through not found", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()

		repo := new(MockShipmentRepository)
		repo.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("shipment", id.String())).Once()

		query, err := queries.NewGetShipmentQuery(id)
		require.NoError(t, err)

		h := queries.NewGetShipmentQueryHandler(repo)
		_, err = h.Handle(ctx, query)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestNewGetShipmentQuery(t *testing.T) {
	t.Run("should reject invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := queries.NewGetShipmentQuery(invalidID)

		require.Error(t, err)
	})

	t.Run("should fail validation for zero-value query", func(t *testing.T) {
		var query queries.GetShipmentQuery

		err := query.Validate()

		require.Error(t, err)
		assert.Equal(t, queries.ErrGetShipmentQueryIsNotConstructed, err)
	})
}
