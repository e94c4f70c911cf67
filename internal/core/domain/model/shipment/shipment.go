package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"

	"shipping/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment. This ensures all
	// shipments are properly validated.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")
)

// Shipment is the aggregate root tracking one order's physical delivery from
// creation to delivery or return.
//
// Shipment maintains these invariants:
//   - Exactly one shipment exists per order reference (enforced by the store)
//   - The tracking number is globally unique (enforced by the store)
//   - cost.total always equals cost.base + cost.additional
//   - The history log is append-only and grows by exactly one entry per
//     status-changing operation
//   - The confirmation and the actual delivery time exist if and only if the
//     status is delivered
//
// All mutations go through ChangeStatus, MarkDelivered, MarkReturned and
// UpdateCost; direct field access is impossible from outside the package.
type Shipment struct {
	// id is the unique identifier for the shipment
	id kernel.UUID

	// orderID references the external order this shipment fulfills (1:1)
	orderID kernel.UUID

	// status is the current state in the delivery lifecycle
	status Status

	carrier  Carrier
	tracking Tracking
	schedule Schedule
	address  Address
	cost     Cost
	options  Options

	// history is the append-only audit trail of lifecycle events
	history HistoryLog

	// returnInfo exists only on the failed/returned paths
	returnInfo *ReturnInfo

	// confirmation exists iff status == Delivered
	confirmation *Confirmation

	createdAt time.Time
	updatedAt time.Time

	// version backs the store's optimistic concurrency check
	version int

	// isConstructed ensures the shipment was created via a constructor
	isConstructed bool
}

// NewShipment creates a shipment for an order that reached a shippable state.
// The shipment starts in Preparing status with an empty history; validation
// failures from any of the value objects are joined into one error.
//
// The order itself is an external collaborator: this constructor records its
// identifier and trusts the caller for everything else about it.
func NewShipment(
	id kernel.UUID,
	orderID kernel.UUID,
	carrier Carrier,
	tracking Tracking,
	schedule Schedule,
	address Address,
	cost Cost,
	options Options,
) (*Shipment, error) {
	now := time.Now().UTC()
	s := &Shipment{
		status:        Preparing,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setCarrier(carrier),
		s.setTracking(tracking),
		s.setSchedule(schedule),
		s.setAddress(address),
		s.setCost(cost),
		s.setOptions(options),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Snapshot carries every persisted field of a shipment for rehydration.
type Snapshot struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Status       Status
	Carrier      Carrier
	Tracking     Tracking
	Schedule     Schedule
	Address      Address
	Cost         Cost
	Options      Options
	History      HistoryLog
	ReturnInfo   *ReturnInfo
	Confirmation *Confirmation
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int
}

// RestoreShipment rebuilds a shipment from persistence. It revalidates the
// same invariants as NewShipment plus the restored status, so corrupt rows
// surface as errors instead of invalid aggregates.
func RestoreShipment(snapshot Snapshot) (*Shipment, error) {
	s := &Shipment{
		history:       snapshot.History,
		returnInfo:    snapshot.ReturnInfo,
		confirmation:  snapshot.Confirmation,
		createdAt:     snapshot.CreatedAt,
		updatedAt:     snapshot.UpdatedAt,
		version:       snapshot.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(snapshot.ID),
		s.setOrderID(snapshot.OrderID),
		s.setStatus(snapshot.Status),
		s.setCarrier(snapshot.Carrier),
		s.setTracking(snapshot.Tracking),
		s.setSchedule(snapshot.Schedule),
		s.setAddress(snapshot.Address),
		s.setCost(snapshot.Cost),
		s.setOptions(snapshot.Options),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment instance was properly constructed.
// Call it when reconstructing shipments from persistence or before writes.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identifier of the order this shipment fulfills.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// Status returns the current lifecycle status.
func (s *Shipment) Status() Status {
	return s.status
}

// Carrier returns the delivery company moving the parcel.
func (s *Shipment) Carrier() Carrier {
	return s.carrier
}

// Tracking returns the carrier-issued tracking data.
func (s *Shipment) Tracking() Tracking {
	return s.tracking
}

// Schedule returns the delivery timeline.
func (s *Shipment) Schedule() Schedule {
	return s.schedule
}

// Address returns the recipient and destination data.
func (s *Shipment) Address() Address {
	return s.address
}

// Cost returns the shipping price breakdown.
func (s *Shipment) Cost() Cost {
	return s.cost
}

// Options returns the sender-chosen delivery options.
func (s *Shipment) Options() Options {
	return s.options
}

// History returns the append-only audit trail.
func (s *Shipment) History() HistoryLog {
	return s.history
}

// ReturnInfo returns the return record, or nil when the parcel was never
// sent back.
func (s *Shipment) ReturnInfo() *ReturnInfo {
	return s.returnInfo
}

// Confirmation returns the proof of delivery, or nil while undelivered.
func (s *Shipment) Confirmation() *Confirmation {
	return s.confirmation
}

// CreatedAt returns when the shipment record was created.
func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the shipment record last changed.
func (s *Shipment) UpdatedAt() time.Time {
	return s.updatedAt
}

// Version returns the optimistic concurrency counter owned by the store.
func (s *Shipment) Version() int {
	return s.version
}

// IsDelayed reports whether the shipment is past its promised delivery time
// as of now. Computed fresh on every call, never stored.
func (s *Shipment) IsDelayed(now time.Time) bool {
	return IsDelayed(s.schedule.estimatedDelivery, s.schedule.actualDelivery, now)
}

// DeliveryDuration returns the whole-day delivery duration, defined only
// once the shipment is delivered. Computed fresh on every call, never stored.
func (s *Shipment) DeliveryDuration() (int, bool) {
	return DeliveryDuration(s.createdAt, s.schedule.actualDelivery)
}

// ChangeStatus performs an ordinary status change.
//
// The move must be allowed by the status transition table; Delivered is
// rejected here because only MarkDelivered may set it. On success the status
// changes and exactly one history entry is appended, stamped with at.
// When description is empty a default one naming the new status is recorded.
//
// The change happens entirely in memory: the caller persists the aggregate
// afterwards, so status and history reach the store as one atomic write.
func (s *Shipment) ChangeStatus(next Status, location, description string, at time.Time) error {
	newStatus, err := s.status.TransitionTo(next)
	if err != nil {
		return err
	}

	if description == "" {
		description = defaultStatusDescription(next)
	}

	event, err := NewHistoryEvent(next, location, description, "", at)
	if err != nil {
		return err
	}

	s.status = newStatus
	s.history.Append(event)
	s.updatedAt = at
	return nil
}

// MarkDelivered finalizes the shipment as delivered.
//
// This is the only operation that sets Delivered status, the actual delivery
// time and the confirmation, and it sets all three together so no partial
// delivered state is ever observable. The appended history entry carries the
// confirming party's name in its signature field.
//
// A zero method defaults to ConfirmationSignature. Re-confirming a delivered
// shipment, or confirming one already returned to the sender, fails without
// mutating anything.
func (s *Shipment) MarkDelivered(confirmedBy string, method ConfirmationMethod, at time.Time) error {
	if s.status == Delivered {
		return errs.NewInvalidStateError("shipment is already delivered")
	}
	if s.status == Returned {
		return errs.NewInvalidStateError("shipment was returned to sender")
	}
	if confirmedBy == "" {
		return errs.NewValueIsRequiredError("confirmedBy")
	}
	if method == ConfirmationUnknown {
		method = ConfirmationSignature
	}
	if err := method.Validate(); err != nil {
		return err
	}

	event, err := NewHistoryEvent(Delivered, "", defaultStatusDescription(Delivered), confirmedBy, at)
	if err != nil {
		return err
	}

	confirmation := Confirmation{
		method:      method,
		confirmedBy: confirmedBy,
		confirmedAt: at,
	}

	s.status = Delivered
	s.schedule = s.schedule.withActualDelivery(at)
	s.confirmation = &confirmation
	s.history.Append(event)
	s.updatedAt = at
	return nil
}

// MarkReturned finalizes the shipment as returned to the sender, recording
// why in the return info. Allowed from any non-terminal status; appends
// exactly one history entry.
func (s *Shipment) MarkReturned(reason, returnLocation string, newDeliveryAttempt *time.Time, at time.Time) error {
	if s.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithCause("status",
			fmt.Errorf("cannot return a shipment in %s status", s.status))
	}

	returnInfo, err := NewReturnInfo(reason, returnLocation, at, newDeliveryAttempt)
	if err != nil {
		return err
	}

	event, err := NewHistoryEvent(Returned, returnLocation, defaultStatusDescription(Returned), "", at)
	if err != nil {
		return err
	}

	s.status = Returned
	s.returnInfo = &returnInfo
	s.history.Append(event)
	s.updatedAt = at
	return nil
}

// UpdateCost replaces the cost components. The total is rederived by the
// Cost constructor, keeping the total invariant without a separate step.
func (s *Shipment) UpdateCost(base, additional int64) error {
	cost, err := NewCost(base, additional)
	if err != nil {
		return err
	}

	s.cost = cost
	return nil
}

// defaultStatusDescription builds the history description used when the
// caller provides none.
func defaultStatusDescription(status Status) string {
	return fmt.Sprintf("Shipment status changed to %s", status)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Shipment) setCarrier(carrier Carrier) error {
	if err := carrier.Validate(); err != nil {
		return err
	}
	s.carrier = carrier
	return nil
}

func (s *Shipment) setTracking(tracking Tracking) error {
	if err := tracking.Validate(); err != nil {
		return err
	}
	s.tracking = tracking
	return nil
}

func (s *Shipment) setSchedule(schedule Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	s.schedule = schedule
	return nil
}

func (s *Shipment) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	s.address = address
	return nil
}

func (s *Shipment) setCost(cost Cost) error {
	if err := cost.Validate(); err != nil {
		return err
	}
	s.cost = cost
	return nil
}

func (s *Shipment) setOptions(options Options) error {
	if err := options.Validate(); err != nil {
		return err
	}
	s.options = options
	return nil
}
