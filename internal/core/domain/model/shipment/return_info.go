package shipment

import (
	"strings"
	"time"

	"shipping/internal/pkg/errs"
)

// ReturnInfo records why and how a parcel goes back to the sender. It is
// populated only on the failed/returned paths of the lifecycle; a shipment
// that was never sent back carries no ReturnInfo at all.
type ReturnInfo struct {
	reason             string
	returnDate         time.Time
	returnLocation     string
	newDeliveryAttempt *time.Time
}

// NewReturnInfo creates a validated ReturnInfo. The reason is required;
// returnLocation and the optional new delivery attempt are opaque data.
func NewReturnInfo(reason, returnLocation string, returnDate time.Time, newDeliveryAttempt *time.Time) (ReturnInfo, error) {
	if strings.TrimSpace(reason) == "" {
		return ReturnInfo{}, errs.NewValueIsRequiredError("return reason")
	}

	return ReturnInfo{
		reason:             reason,
		returnDate:         returnDate,
		returnLocation:     returnLocation,
		newDeliveryAttempt: newDeliveryAttempt,
	}, nil
}

// Reason returns why the parcel was sent back.
func (r ReturnInfo) Reason() string {
	return r.reason
}

// ReturnDate returns when the return was registered.
func (r ReturnInfo) ReturnDate() time.Time {
	return r.returnDate
}

// ReturnLocation returns where the parcel was returned to.
func (r ReturnInfo) ReturnLocation() string {
	return r.returnLocation
}

// NewDeliveryAttempt returns the scheduled redelivery time, if one exists.
func (r ReturnInfo) NewDeliveryAttempt() *time.Time {
	return r.newDeliveryAttempt
}
