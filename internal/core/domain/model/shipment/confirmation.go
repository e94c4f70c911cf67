package shipment

import (
	"fmt"
	"time"

	"shipping/internal/pkg/errs"
)

// ConfirmationMethod is how the delivery was proven at the door.
type ConfirmationMethod int

const (
	ConfirmationUnknown ConfirmationMethod = iota
	ConfirmationSignature
	ConfirmationPhoto
	ConfirmationSMS
	ConfirmationCall
)

func getConfirmationMethodStrings() map[ConfirmationMethod]string {
	return map[ConfirmationMethod]string{
		ConfirmationSignature: "signature",
		ConfirmationPhoto:     "photo",
		ConfirmationSMS:       "sms",
		ConfirmationCall:      "call",
	}
}

// ConfirmationMethodFromString parses the wire/storage representation.
func ConfirmationMethodFromString(s string) (ConfirmationMethod, error) {
	for method, str := range getConfirmationMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return ConfirmationUnknown, errs.NewValueIsInvalidErrorWithCause("confirmation method",
		fmt.Errorf("%q is not a valid confirmation method", s))
}

// Validate checks the method is one of the four defined proofs.
func (m ConfirmationMethod) Validate() error {
	if _, ok := getConfirmationMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("confirmation method",
			fmt.Errorf("%d is not a valid confirmation method", m))
	}
	return nil
}

// String returns the lowercase name, e.g. "signature".
func (m ConfirmationMethod) String() string {
	if str, ok := getConfirmationMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// Confirmation is the proof-of-delivery record. It exists if and only if the
// shipment is delivered, and is written exactly once by the aggregate's
// delivery confirmation. Photo and signature are opaque payloads.
type Confirmation struct {
	method      ConfirmationMethod
	confirmedBy string
	confirmedAt time.Time
	photo       string
	signature   string
}

// RestoreConfirmation rebuilds a Confirmation from persistence.
func RestoreConfirmation(
	method ConfirmationMethod,
	confirmedBy string,
	confirmedAt time.Time,
	photo string,
	signature string,
) (Confirmation, error) {
	if err := method.Validate(); err != nil {
		return Confirmation{}, err
	}
	if confirmedBy == "" {
		return Confirmation{}, errs.NewValueIsRequiredError("confirmedBy")
	}

	return Confirmation{
		method:      method,
		confirmedBy: confirmedBy,
		confirmedAt: confirmedAt,
		photo:       photo,
		signature:   signature,
	}, nil
}

// Method returns how the delivery was proven.
func (c Confirmation) Method() ConfirmationMethod {
	return c.method
}

// ConfirmedBy returns who accepted the parcel.
func (c Confirmation) ConfirmedBy() string {
	return c.confirmedBy
}

// ConfirmedAt returns when the delivery was confirmed.
func (c Confirmation) ConfirmedAt() time.Time {
	return c.confirmedAt
}

// Photo returns the proof photo payload, if any.
func (c Confirmation) Photo() string {
	return c.photo
}

// Signature returns the captured signature payload, if any.
func (c Confirmation) Signature() string {
	return c.signature
}
