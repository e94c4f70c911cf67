package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/pkg/errs"
)

// ErrScheduleIsNotConstructed is returned when a Schedule value was not
// created through one of its factory functions.
var ErrScheduleIsNotConstructed = errors.New("Schedule must be created via NewSchedule constructor")

// TimeSlot is the recipient's preferred delivery window.
type TimeSlot int

const (
	TimeSlotUnknown TimeSlot = iota
	TimeSlotMorning
	TimeSlotAfternoon
	TimeSlotEvening
	TimeSlotAnytime
)

func getTimeSlotStrings() map[TimeSlot]string {
	return map[TimeSlot]string{
		TimeSlotMorning:   "morning",
		TimeSlotAfternoon: "afternoon",
		TimeSlotEvening:   "evening",
		TimeSlotAnytime:   "anytime",
	}
}

// TimeSlotFromString parses the wire/storage representation of a time slot.
func TimeSlotFromString(s string) (TimeSlot, error) {
	for slot, str := range getTimeSlotStrings() {
		if str == s {
			return slot, nil
		}
	}
	return TimeSlotUnknown, errs.NewValueIsInvalidErrorWithCause("timeSlot",
		fmt.Errorf("%q is not a valid time slot", s))
}

// Validate checks the slot is one of the four defined windows.
func (t TimeSlot) Validate() error {
	if _, ok := getTimeSlotStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("timeSlot",
			fmt.Errorf("%d is not a valid time slot", t))
	}
	return nil
}

// String returns the lowercase name of the slot, e.g. "afternoon".
func (t TimeSlot) String() string {
	if str, ok := getTimeSlotStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Schedule holds the delivery timeline of a shipment.
//
// estimatedDelivery is required at construction. actualDelivery starts unset
// and is written exactly once, by the aggregate's delivery confirmation; its
// presence is therefore equivalent to the shipment being delivered.
type Schedule struct {
	pickupDate        *time.Time
	estimatedDelivery time.Time
	actualDelivery    *time.Time
	timeSlot          TimeSlot

	isConstructed bool
}

// NewSchedule creates a validated Schedule. The estimated delivery time is
// required; the pickup date is optional.
func NewSchedule(pickupDate *time.Time, estimatedDelivery time.Time, timeSlot TimeSlot) (Schedule, error) {
	if estimatedDelivery.IsZero() {
		return Schedule{}, errs.NewValueIsRequiredError("estimated delivery")
	}
	if err := timeSlot.Validate(); err != nil {
		return Schedule{}, err
	}

	return Schedule{
		pickupDate:        pickupDate,
		estimatedDelivery: estimatedDelivery,
		timeSlot:          timeSlot,
		isConstructed:     true,
	}, nil
}

// RestoreSchedule rebuilds a Schedule from persistence, including an actual
// delivery time already recorded by a past confirmation.
func RestoreSchedule(
	pickupDate *time.Time,
	estimatedDelivery time.Time,
	actualDelivery *time.Time,
	timeSlot TimeSlot,
) (Schedule, error) {
	schedule, err := NewSchedule(pickupDate, estimatedDelivery, timeSlot)
	if err != nil {
		return Schedule{}, err
	}

	schedule.actualDelivery = actualDelivery
	return schedule, nil
}

// Validate ensures the Schedule was created through a factory function.
func (s Schedule) Validate() error {
	if !s.isConstructed {
		return ErrScheduleIsNotConstructed
	}
	return nil
}

// PickupDate returns when the carrier collected (or will collect) the parcel.
func (s Schedule) PickupDate() *time.Time {
	return s.pickupDate
}

// EstimatedDelivery returns the promised delivery time.
func (s Schedule) EstimatedDelivery() time.Time {
	return s.estimatedDelivery
}

// ActualDelivery returns the confirmed delivery time, or nil while the
// shipment is undelivered.
func (s Schedule) ActualDelivery() *time.Time {
	return s.actualDelivery
}

// TimeSlot returns the recipient's preferred delivery window.
func (s Schedule) TimeSlot() TimeSlot {
	return s.timeSlot
}

// withActualDelivery returns a copy of the schedule with the confirmed
// delivery time set. Package-private: only the aggregate's delivery
// confirmation may call it.
func (s Schedule) withActualDelivery(at time.Time) Schedule {
	s.actualDelivery = &at
	return s
}
