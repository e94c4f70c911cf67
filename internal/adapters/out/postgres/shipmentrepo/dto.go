// Package shipmentrepo provides data transfer objects and mapping functions for
// shipment persistence. This package implements the repository pattern for the
// shipment domain aggregate, handling the conversion between domain entities
// and database representations.
package shipmentrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The order reference and the tracking number carry unique
// indexes: together with TranslateError on the connection they enforce the
// one-shipment-per-order and unique-tracking-number rules in the database,
// where concurrent writers cannot bypass them.
//
// Version backs the optimistic concurrency check in the repository's Update.
type ShipmentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Status  int       `gorm:"index"`

	Carrier  CarrierDTO  `gorm:"embedded;embeddedPrefix:carrier_"`
	Tracking TrackingDTO `gorm:"embedded;embeddedPrefix:tracking_"`

	PickupDate        *time.Time
	EstimatedDelivery time.Time `gorm:"index"`
	ActualDelivery    *time.Time
	TimeSlot          int

	Address AddressDTO `gorm:"embedded"`

	CostBase       int64
	CostAdditional int64
	CostTotal      int64

	DeliveryMethod   int
	SpecialHandling  pq.StringArray `gorm:"type:text[]"`
	InsuranceEnabled bool
	InsuranceAmount  int64

	ReturnReason       string
	ReturnDate         *time.Time
	ReturnLocation     string
	NewDeliveryAttempt *time.Time

	ConfirmationMethod    int
	ConfirmedBy           string
	ConfirmedAt           *time.Time
	ConfirmationPhoto     string
	ConfirmationSignature string

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// CarrierDTO represents the embedded carrier columns within the shipments table.
type CarrierDTO struct {
	Name    string `gorm:"index"`
	Code    string
	Phone   string
	Website string
}

// TrackingDTO represents the embedded tracking columns within the shipments table.
type TrackingDTO struct {
	Number string `gorm:"uniqueIndex"`
	URL    string
	QRCode string
}

// AddressDTO represents the embedded destination columns within the shipments table.
type AddressDTO struct {
	RecipientName    string
	RecipientPhone   string
	Street           string
	City             string
	ZipCode          string
	State            string
	Country          string
	Instructions     string
	AbsenteeHandling int
}

// HistoryEventDTO represents one row of a shipment's append-only audit trail.
// The (shipment_id, seq) primary key makes re-inserting an existing entry a
// no-op under ON CONFLICT DO NOTHING, so committed history is never rewritten.
type HistoryEventDTO struct {
	ShipmentID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int       `gorm:"primaryKey;autoIncrement:false"`
	Status      int
	Location    string
	Timestamp   time.Time
	Description string
	Signature   string
}

// TableName specifies the database table name for history entries.
func (HistoryEventDTO) TableName() string {
	return "shipment_history"
}

// fromDomain converts a shipment domain aggregate to its database
// representation. The cost total is recomputed from its components right
// before persisting, keeping the stored column consistent by construction.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	cost := aggregate.Cost().Recompute()
	schedule := aggregate.Schedule()
	address := aggregate.Address()
	options := aggregate.Options()

	handling := make(pq.StringArray, 0, len(options.SpecialHandling()))
	for _, flag := range options.SpecialHandling() {
		handling = append(handling, flag.String())
	}

	dto := ShipmentDTO{
		ID:      aggregate.ID().Bytes(),
		OrderID: aggregate.OrderID().Bytes(),
		Status:  int(aggregate.Status()),

		Carrier: CarrierDTO{
			Name:    aggregate.Carrier().Name(),
			Code:    aggregate.Carrier().Code(),
			Phone:   aggregate.Carrier().Contact().Phone(),
			Website: aggregate.Carrier().Contact().Website(),
		},
		Tracking: TrackingDTO{
			Number: aggregate.Tracking().Number(),
			URL:    aggregate.Tracking().URL(),
			QRCode: aggregate.Tracking().QRCode(),
		},

		PickupDate:        schedule.PickupDate(),
		EstimatedDelivery: schedule.EstimatedDelivery(),
		ActualDelivery:    schedule.ActualDelivery(),
		TimeSlot:          int(schedule.TimeSlot()),

		Address: AddressDTO{
			RecipientName:    address.Recipient().Name(),
			RecipientPhone:   address.Recipient().Phone(),
			Street:           address.Location().Street(),
			City:             address.Location().City(),
			ZipCode:          address.Location().ZipCode(),
			State:            address.Location().State(),
			Country:          address.Location().Country(),
			Instructions:     address.Instructions(),
			AbsenteeHandling: int(address.AbsenteeHandling()),
		},

		CostBase:       cost.Base(),
		CostAdditional: cost.Additional(),
		CostTotal:      cost.Total(),

		DeliveryMethod:   int(options.Method()),
		SpecialHandling:  handling,
		InsuranceEnabled: options.Insurance().Enabled(),
		InsuranceAmount:  options.Insurance().Amount(),

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Version:   aggregate.Version(),
	}

	if info := aggregate.ReturnInfo(); info != nil {
		returnDate := info.ReturnDate()
		dto.ReturnReason = info.Reason()
		dto.ReturnDate = &returnDate
		dto.ReturnLocation = info.ReturnLocation()
		dto.NewDeliveryAttempt = info.NewDeliveryAttempt()
	}

	if confirmation := aggregate.Confirmation(); confirmation != nil {
		confirmedAt := confirmation.ConfirmedAt()
		dto.ConfirmationMethod = int(confirmation.Method())
		dto.ConfirmedBy = confirmation.ConfirmedBy()
		dto.ConfirmedAt = &confirmedAt
		dto.ConfirmationPhoto = confirmation.Photo()
		dto.ConfirmationSignature = confirmation.Signature()
	}

	return dto
}

// historyFromDomain converts the aggregate's history log into rows.
// Seq numbers start at 1 and follow insertion order.
func historyFromDomain(aggregate *shipment.Shipment) []HistoryEventDTO {
	rows := make([]HistoryEventDTO, 0, aggregate.History().Len())
	seq := 0
	for event := range aggregate.History().Events() {
		seq++
		rows = append(rows, HistoryEventDTO{
			ShipmentID:  aggregate.ID().Bytes(),
			Seq:         seq,
			Status:      int(event.Status()),
			Location:    event.Location(),
			Timestamp:   event.Timestamp(),
			Description: event.Description(),
			Signature:   event.Signature(),
		})
	}
	return rows
}

// toDomain converts database rows back into a shipment aggregate.
// Every value object is rebuilt through its constructor, so corrupt rows
// fail loudly instead of producing invalid aggregates.
func toDomain(dto ShipmentDTO, history []HistoryEventDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	carrier, err := shipment.NewCarrier(dto.Carrier.Name, dto.Carrier.Code,
		shipment.NewCarrierContact(dto.Carrier.Phone, dto.Carrier.Website))
	if err != nil {
		return nil, err
	}

	tracking, err := shipment.NewTracking(dto.Tracking.Number, dto.Tracking.URL, dto.Tracking.QRCode)
	if err != nil {
		return nil, err
	}

	schedule, err := shipment.RestoreSchedule(dto.PickupDate, dto.EstimatedDelivery,
		dto.ActualDelivery, shipment.TimeSlot(dto.TimeSlot))
	if err != nil {
		return nil, err
	}

	recipient, err := shipment.NewRecipient(dto.Address.RecipientName, dto.Address.RecipientPhone)
	if err != nil {
		return nil, err
	}

	location, err := shipment.NewLocation(dto.Address.Street, dto.Address.City,
		dto.Address.ZipCode, dto.Address.State, dto.Address.Country)
	if err != nil {
		return nil, err
	}

	address, err := shipment.NewAddress(recipient, location, dto.Address.Instructions,
		shipment.AbsenteeHandling(dto.Address.AbsenteeHandling))
	if err != nil {
		return nil, err
	}

	cost, err := shipment.NewCost(dto.CostBase, dto.CostAdditional)
	if err != nil {
		return nil, err
	}

	handling := make([]shipment.SpecialHandling, 0, len(dto.SpecialHandling))
	for _, raw := range dto.SpecialHandling {
		flag, flagErr := shipment.SpecialHandlingFromString(raw)
		if flagErr != nil {
			return nil, flagErr
		}
		handling = append(handling, flag)
	}

	insurance, err := shipment.NewInsurance(dto.InsuranceEnabled, dto.InsuranceAmount)
	if err != nil {
		return nil, err
	}

	options, err := shipment.NewOptions(shipment.DeliveryMethod(dto.DeliveryMethod), handling, insurance)
	if err != nil {
		return nil, err
	}

	events := make([]shipment.HistoryEvent, 0, len(history))
	for _, row := range history {
		event, eventErr := shipment.NewHistoryEvent(shipment.Status(row.Status),
			row.Location, row.Description, row.Signature, row.Timestamp)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	snapshot := shipment.Snapshot{
		ID:        id,
		OrderID:   orderID,
		Status:    shipment.Status(dto.Status),
		Carrier:   carrier,
		Tracking:  tracking,
		Schedule:  schedule,
		Address:   address,
		Cost:      cost,
		Options:   options,
		History:   shipment.RestoreHistoryLog(events),
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		Version:   dto.Version,
	}

	if dto.ReturnReason != "" && dto.ReturnDate != nil {
		info, infoErr := shipment.NewReturnInfo(dto.ReturnReason, dto.ReturnLocation,
			*dto.ReturnDate, dto.NewDeliveryAttempt)
		if infoErr != nil {
			return nil, infoErr
		}
		snapshot.ReturnInfo = &info
	}

	if dto.ConfirmedAt != nil {
		confirmation, confErr := shipment.RestoreConfirmation(
			shipment.ConfirmationMethod(dto.ConfirmationMethod),
			dto.ConfirmedBy, *dto.ConfirmedAt,
			dto.ConfirmationPhoto, dto.ConfirmationSignature)
		if confErr != nil {
			return nil, confErr
		}
		snapshot.Confirmation = &confirmation
	}

	return shipment.RestoreShipment(snapshot)
}
