package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment with its full history and derived
// metrics.
//
// Example:
//
//	query, err := NewGetShipmentQuery(shipmentID)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewGetShipmentQueryHandler(repo)
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get shipment: %w", err)
//	}
//	fmt.Printf("Shipment %s is %s\n", detail.ID, detail.Status)
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query for one shipment.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the identifier of the requested shipment.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// GetShipmentQueryResponse is the full read model of one shipment.
// IsDelayed and DeliveryDurationDays are derived at read time from the
// persisted fields; they are never stored.
type GetShipmentQueryResponse struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Status         string
	CarrierName    string
	CarrierCode    string
	CarrierPhone   string
	CarrierWebsite string

	TrackingNumber string
	TrackingURL    string
	TrackingQRCode string

	PickupDate        *time.Time
	EstimatedDelivery time.Time
	ActualDelivery    *time.Time
	TimeSlot          string

	RecipientName    string
	RecipientPhone   string
	Street           string
	City             string
	ZipCode          string
	State            string
	Country          string
	Instructions     string
	AbsenteeHandling string

	CostBase       int64
	CostAdditional int64
	CostTotal      int64

	DeliveryMethod   string
	SpecialHandling  []string
	InsuranceEnabled bool
	InsuranceAmount  int64

	ReturnReason       string
	ReturnDate         *time.Time
	ReturnLocation     string
	NewDeliveryAttempt *time.Time

	ConfirmationMethod string
	ConfirmedBy        string
	ConfirmedAt        *time.Time

	History []HistoryEntryResponse

	IsDelayed            bool
	DeliveryDurationDays *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HistoryEntryResponse is one audit trail entry in the read model.
type HistoryEntryResponse struct {
	Status      string
	Location    string
	Timestamp   time.Time
	Description string
	Signature   string
}
