package queries

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// GetShipmentQueryHandler serves the shipment detail read model.
//
// Unlike the list queries, the detail query loads the full aggregate through
// the repository: it needs the complete history and the restored schedule to
// compute the derived metrics, and the extra read cost is paid for exactly
// one row.
type GetShipmentQueryHandler struct {
	repo ports.ShipmentRepository
}

// NewGetShipmentQueryHandler creates a handler for shipment detail queries.
func NewGetShipmentQueryHandler(repo ports.ShipmentRepository) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{repo: repo}
}

// Handle loads the shipment and maps it to the read model, history included.
// IsDelayed is evaluated against the current time; the delivery duration is
// present only for delivered shipments.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	aggregate, err := h.repo.Get(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	return toResponse(aggregate, time.Now().UTC()), nil
}

func toResponse(aggregate *shipment.Shipment, now time.Time) GetShipmentQueryResponse {
	resp := GetShipmentQueryResponse{
		ID:             aggregate.ID(),
		OrderID:        aggregate.OrderID(),
		Status:         aggregate.Status().String(),
		CarrierName:    aggregate.Carrier().Name(),
		CarrierCode:    aggregate.Carrier().Code(),
		CarrierPhone:   aggregate.Carrier().Contact().Phone(),
		CarrierWebsite: aggregate.Carrier().Contact().Website(),

		TrackingNumber: aggregate.Tracking().Number(),
		TrackingURL:    aggregate.Tracking().URL(),
		TrackingQRCode: aggregate.Tracking().QRCode(),

		PickupDate:        aggregate.Schedule().PickupDate(),
		EstimatedDelivery: aggregate.Schedule().EstimatedDelivery(),
		ActualDelivery:    aggregate.Schedule().ActualDelivery(),
		TimeSlot:          aggregate.Schedule().TimeSlot().String(),

		RecipientName:    aggregate.Address().Recipient().Name(),
		RecipientPhone:   aggregate.Address().Recipient().Phone(),
		Street:           aggregate.Address().Location().Street(),
		City:             aggregate.Address().Location().City(),
		ZipCode:          aggregate.Address().Location().ZipCode(),
		State:            aggregate.Address().Location().State(),
		Country:          aggregate.Address().Location().Country(),
		Instructions:     aggregate.Address().Instructions(),
		AbsenteeHandling: aggregate.Address().AbsenteeHandling().String(),

		CostBase:       aggregate.Cost().Base(),
		CostAdditional: aggregate.Cost().Additional(),
		CostTotal:      aggregate.Cost().Total(),

		DeliveryMethod:   aggregate.Options().Method().String(),
		InsuranceEnabled: aggregate.Options().Insurance().Enabled(),
		InsuranceAmount:  aggregate.Options().Insurance().Amount(),

		IsDelayed: aggregate.IsDelayed(now),

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
	}

	for _, flag := range aggregate.Options().SpecialHandling() {
		resp.SpecialHandling = append(resp.SpecialHandling, flag.String())
	}

	if info := aggregate.ReturnInfo(); info != nil {
		returnDate := info.ReturnDate()
		resp.ReturnReason = info.Reason()
		resp.ReturnDate = &returnDate
		resp.ReturnLocation = info.ReturnLocation()
		resp.NewDeliveryAttempt = info.NewDeliveryAttempt()
	}

	if confirmation := aggregate.Confirmation(); confirmation != nil {
		confirmedAt := confirmation.ConfirmedAt()
		resp.ConfirmationMethod = confirmation.Method().String()
		resp.ConfirmedBy = confirmation.ConfirmedBy()
		resp.ConfirmedAt = &confirmedAt
	}

	for event := range aggregate.History().Events() {
		resp.History = append(resp.History, HistoryEntryResponse{
			Status:      event.Status().String(),
			Location:    event.Location(),
			Timestamp:   event.Timestamp(),
			Description: event.Description(),
			Signature:   event.Signature(),
		})
	}

	if days, ok := aggregate.DeliveryDuration(); ok {
		resp.DeliveryDurationDays = &days
	}

	return resp
}
