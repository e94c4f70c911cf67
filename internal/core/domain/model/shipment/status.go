package shipment

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a state machine with a guarded transition table so shipments
// follow the physical delivery workflow.
//
// State transitions:
//
//	preparing ──> picked_up ──> in_transit ──> out_for_delivery ──> delivered
//	     │             │             │                 │
//	     └─────────────┴─────────────┴──── failed ─────┘
//	                                          │
//	                            returned <────┴────> (redelivery: in_transit,
//	                                                  out_for_delivery)
//
// Forward moves may skip intermediate states because carriers do not always
// report every scan event. delivered and returned are terminal. delivered is
// never a valid target of an ordinary status change: it is set exclusively by
// the delivery confirmation path, which also records the confirmation and the
// actual delivery time.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Preparing is the initial status when a shipment is first created.
	// The parcel is being packed and has not been handed to the carrier.
	Preparing

	// PickedUp indicates the carrier has collected the parcel.
	PickedUp

	// InTransit indicates the parcel is moving through the carrier network.
	InTransit

	// OutForDelivery indicates the parcel is on the last-mile vehicle.
	OutForDelivery

	// Delivered indicates the parcel reached the recipient. Terminal.
	// Reachable only through delivery confirmation, never through an
	// ordinary status change.
	Delivered

	// Failed indicates a delivery attempt failed. The shipment can be
	// rerouted for redelivery or sent back to the sender.
	Failed

	// Returned indicates the parcel went back to the sender. Terminal.
	Returned
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Preparing:      "preparing",
		PickedUp:       "picked_up",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Failed:         "failed",
		Returned:       "returned",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Preparing:      "preparing",
		PickedUp:       "picked_up",
		InTransit:      "in_transit",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Failed:         "failed",
		Returned:       "returned",
	}
}

// getStatusTransitions returns the allowed targets of an ordinary status
// change per source status. Delivered never appears as a target here: the
// delivery confirmation path is the only way to reach it, so the delivered
// status can never exist without its confirmation fields.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Preparing:      {PickedUp, InTransit, OutForDelivery, Failed},
		PickedUp:       {InTransit, OutForDelivery, Failed},
		InTransit:      {OutForDelivery, Failed},
		OutForDelivery: {Failed},
		Failed:         {InTransit, OutForDelivery, Returned},
		Delivered:      {},
		Returned:       {},
	}
}

// StatusFromString parses the wire/storage representation of a status.
// Returns an error for anything outside the seven defined statuses.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the seven defined statuses.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status, e.g. "out_for_delivery".
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status allows no further ordinary transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned
}

// CanTransitionTo reports whether an ordinary status change from s to next
// is allowed by the transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs an ordinary status change.
//
// Returns:
//   - (next, nil) when the transition table allows the move
//   - (0, error) when next is not a valid status, or the move is not allowed
//
// Moving into Delivered always fails here; use the delivery confirmation
// path on the aggregate instead.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}

	if next == Delivered {
		return 0, errs.NewInvalidStateErrorWithCause("status",
			fmt.Errorf("%s is set via delivery confirmation only", next))
	}

	if !s.CanTransitionTo(next) {
		return 0, errs.NewInvalidStateErrorWithCause("status",
			fmt.Errorf("cannot change status from %s to %s", s, next))
	}

	return next, nil
}
