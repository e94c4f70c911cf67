package shipment

import (
	"errors"
	"strings"

	"shipping/internal/pkg/errs"
)

// ErrTrackingIsNotConstructed is returned when a Tracking value was not
// created through the NewTracking factory function.
var ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking constructor")

// Tracking carries the carrier-issued tracking data for a shipment.
// The number is required and globally unique; uniqueness is enforced by the
// store, not here. URL and QR code are opaque payloads for the storefront.
type Tracking struct {
	number string
	url    string
	qrCode string

	isConstructed bool
}

// NewTracking creates a validated Tracking value. The number is required.
func NewTracking(number, url, qrCode string) (Tracking, error) {
	if strings.TrimSpace(number) == "" {
		return Tracking{}, errs.NewValueIsRequiredError("tracking number")
	}

	return Tracking{
		number:        number,
		url:           url,
		qrCode:        qrCode,
		isConstructed: true,
	}, nil
}

// Validate ensures the Tracking was created through NewTracking.
func (t Tracking) Validate() error {
	if !t.isConstructed {
		return ErrTrackingIsNotConstructed
	}
	return nil
}

// Number returns the carrier-issued tracking number.
func (t Tracking) Number() string {
	return t.number
}

// URL returns the public tracking page URL, if any.
func (t Tracking) URL() string {
	return t.url
}

// QRCode returns the encoded QR payload, if any.
func (t Tracking) QRCode() string {
	return t.qrCode
}
