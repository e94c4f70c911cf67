package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentParams carries the raw request fields for shipment creation.
// Enum-valued fields are wire strings; the command constructor parses and
// validates them into domain values.
type CreateShipmentParams struct {
	CarrierName    string
	CarrierCode    string
	CarrierPhone   string
	CarrierWebsite string

	TrackingNumber string
	TrackingURL    string
	TrackingQRCode string

	PickupDate        *time.Time
	EstimatedDelivery time.Time
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

	DeliveryMethod   string
	SpecialHandling  []string
	InsuranceEnabled bool
	InsuranceAmount  int64
}

// CreateShipmentCommand represents a request to register a shipment for an
// order that reached a shippable state. All field validation happens here, so
// a constructed command always carries valid value objects.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(kernel.NewUUID(), orderID, params)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, carriers)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
type CreateShipmentCommand struct {
	shipmentID kernel.UUID
	orderID    kernel.UUID
	carrier    shipment.Carrier
	tracking   shipment.Tracking
	schedule   shipment.Schedule
	address    shipment.Address
	cost       shipment.Cost
	options    shipment.Options

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Parses the wire-level params into domain value objects; all validation
// failures are joined into one error.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	orderID kernel.UUID,
	params CreateShipmentParams,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setOrderID(orderID),
		cmd.setCarrier(params),
		cmd.setTracking(params),
		cmd.setSchedule(params),
		cmd.setAddress(params),
		cmd.setCost(params),
		cmd.setOptions(params),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier the new shipment will get.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OrderID returns the identifier of the order being shipped.
func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Carrier returns the validated carrier.
func (c CreateShipmentCommand) Carrier() shipment.Carrier {
	return c.carrier
}

// Tracking returns the validated tracking data.
func (c CreateShipmentCommand) Tracking() shipment.Tracking {
	return c.tracking
}

// Schedule returns the validated delivery timeline.
func (c CreateShipmentCommand) Schedule() shipment.Schedule {
	return c.schedule
}

// Address returns the validated destination data.
func (c CreateShipmentCommand) Address() shipment.Address {
	return c.address
}

// Cost returns the validated price breakdown.
func (c CreateShipmentCommand) Cost() shipment.Cost {
	return c.cost
}

// Options returns the validated delivery options.
func (c CreateShipmentCommand) Options() shipment.Options {
	return c.options
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setCarrier(params CreateShipmentParams) error {
	carrier, err := shipment.NewCarrier(params.CarrierName, params.CarrierCode,
		shipment.NewCarrierContact(params.CarrierPhone, params.CarrierWebsite))
	if err != nil {
		return err
	}
	c.carrier = carrier
	return nil
}

func (c *CreateShipmentCommand) setTracking(params CreateShipmentParams) error {
	tracking, err := shipment.NewTracking(params.TrackingNumber, params.TrackingURL, params.TrackingQRCode)
	if err != nil {
		return err
	}
	c.tracking = tracking
	return nil
}

func (c *CreateShipmentCommand) setSchedule(params CreateShipmentParams) error {
	timeSlot := shipment.TimeSlotAnytime
	if params.TimeSlot != "" {
		parsed, err := shipment.TimeSlotFromString(params.TimeSlot)
		if err != nil {
			return err
		}
		timeSlot = parsed
	}

	schedule, err := shipment.NewSchedule(params.PickupDate, params.EstimatedDelivery, timeSlot)
	if err != nil {
		return err
	}
	c.schedule = schedule
	return nil
}

func (c *CreateShipmentCommand) setAddress(params CreateShipmentParams) error {
	recipient, err := shipment.NewRecipient(params.RecipientName, params.RecipientPhone)
	if err != nil {
		return err
	}

	location, err := shipment.NewLocation(params.Street, params.City, params.ZipCode, params.State, params.Country)
	if err != nil {
		return err
	}

	absenteeHandling := shipment.AbsenteeRedelivery
	if params.AbsenteeHandling != "" {
		parsed, err := shipment.AbsenteeHandlingFromString(params.AbsenteeHandling)
		if err != nil {
			return err
		}
		absenteeHandling = parsed
	}

	address, err := shipment.NewAddress(recipient, location, params.Instructions, absenteeHandling)
	if err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *CreateShipmentCommand) setCost(params CreateShipmentParams) error {
	cost, err := shipment.NewCost(params.CostBase, params.CostAdditional)
	if err != nil {
		return err
	}
	c.cost = cost
	return nil
}

func (c *CreateShipmentCommand) setOptions(params CreateShipmentParams) error {
	method := shipment.MethodStandard
	if params.DeliveryMethod != "" {
		parsed, err := shipment.DeliveryMethodFromString(params.DeliveryMethod)
		if err != nil {
			return err
		}
		method = parsed
	}

	handling := make([]shipment.SpecialHandling, 0, len(params.SpecialHandling))
	for _, raw := range params.SpecialHandling {
		flag, err := shipment.SpecialHandlingFromString(raw)
		if err != nil {
			return err
		}
		handling = append(handling, flag)
	}

	insurance, err := shipment.NewInsurance(params.InsuranceEnabled, params.InsuranceAmount)
	if err != nil {
		return err
	}

	options, err := shipment.NewOptions(method, handling, insurance)
	if err != nil {
		return err
	}
	c.options = options
	return nil
}
