package shipment

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"shipping/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when an Address value was not
// created through the NewAddress factory function.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// maxInstructionsLength bounds the free-text delivery instructions.
const maxInstructionsLength = 500

// AbsenteeHandling says what the courier should do when nobody is home.
type AbsenteeHandling int

const (
	AbsenteeUnknown AbsenteeHandling = iota
	AbsenteeRedelivery
	AbsenteeSafePlace
	AbsenteeNeighbor
	AbsenteePickupCenter
)

func getAbsenteeHandlingStrings() map[AbsenteeHandling]string {
	return map[AbsenteeHandling]string{
		AbsenteeRedelivery:   "redelivery",
		AbsenteeSafePlace:    "safe_place",
		AbsenteeNeighbor:     "neighbor",
		AbsenteePickupCenter: "pickup_center",
	}
}

// AbsenteeHandlingFromString parses the wire/storage representation.
func AbsenteeHandlingFromString(s string) (AbsenteeHandling, error) {
	for handling, str := range getAbsenteeHandlingStrings() {
		if str == s {
			return handling, nil
		}
	}
	return AbsenteeUnknown, errs.NewValueIsInvalidErrorWithCause("absenteeHandling",
		fmt.Errorf("%q is not a valid absentee handling", s))
}

// Validate checks the value is one of the four defined policies.
func (a AbsenteeHandling) Validate() error {
	if _, ok := getAbsenteeHandlingStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("absenteeHandling",
			fmt.Errorf("%d is not a valid absentee handling", a))
	}
	return nil
}

// String returns the lowercase name, e.g. "safe_place".
func (a AbsenteeHandling) String() string {
	if str, ok := getAbsenteeHandlingStrings()[a]; ok {
		return str
	}
	return "unknown"
}

// Recipient identifies who receives the parcel. Name and phone are required:
// the courier must be able to reach the recipient at the door.
type Recipient struct {
	name  string
	phone string
}

// NewRecipient creates a validated Recipient.
func NewRecipient(name, phone string) (Recipient, error) {
	if strings.TrimSpace(name) == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient name")
	}
	if strings.TrimSpace(phone) == "" {
		return Recipient{}, errs.NewValueIsRequiredError("recipient phone")
	}
	return Recipient{name: name, phone: phone}, nil
}

// Name returns the recipient's name.
func (r Recipient) Name() string { return r.name }

// Phone returns the recipient's phone number.
func (r Recipient) Phone() string { return r.phone }

// Location is the postal destination of a shipment. Only the zip code is
// mandatory; the remaining parts are opaque strings passed through to labels.
type Location struct {
	street  string
	city    string
	zipCode string
	state   string
	country string
}

// NewLocation creates a validated Location. The zip code is required.
func NewLocation(street, city, zipCode, state, country string) (Location, error) {
	if strings.TrimSpace(zipCode) == "" {
		return Location{}, errs.NewValueIsRequiredError("zip code")
	}
	return Location{
		street:  street,
		city:    city,
		zipCode: zipCode,
		state:   state,
		country: country,
	}, nil
}

// Street returns the street line of the destination.
func (l Location) Street() string { return l.street }

// City returns the destination city.
func (l Location) City() string { return l.city }

// ZipCode returns the destination postal code.
func (l Location) ZipCode() string { return l.zipCode }

// State returns the destination state or province.
func (l Location) State() string { return l.state }

// Country returns the destination country.
func (l Location) Country() string { return l.country }

// Address combines the recipient, the destination and the courier-facing
// delivery preferences of a shipment.
//
// Invariants:
//   - recipient name and phone are present
//   - location zip code is present
//   - instructions never exceed 500 characters
//   - absenteeHandling is one of the four defined policies
type Address struct {
	recipient        Recipient
	location         Location
	instructions     string
	absenteeHandling AbsenteeHandling

	isConstructed bool
}

// NewAddress creates a validated Address.
func NewAddress(
	recipient Recipient,
	location Location,
	instructions string,
	absenteeHandling AbsenteeHandling,
) (Address, error) {
	// Zero values of Recipient/Location bypass their constructors, so the
	// required-field checks are repeated here.
	if strings.TrimSpace(recipient.name) == "" || strings.TrimSpace(recipient.phone) == "" {
		return Address{}, errs.NewValueIsRequiredError("recipient")
	}
	if strings.TrimSpace(location.zipCode) == "" {
		return Address{}, errs.NewValueIsRequiredError("zip code")
	}
	if length := utf8.RuneCountInString(instructions); length > maxInstructionsLength {
		return Address{}, errs.NewValueIsOutOfRangeError("instructions length", length, 0, maxInstructionsLength)
	}
	if err := absenteeHandling.Validate(); err != nil {
		return Address{}, err
	}

	return Address{
		recipient:        recipient,
		location:         location,
		instructions:     instructions,
		absenteeHandling: absenteeHandling,
		isConstructed:    true,
	}, nil
}

// Validate ensures the Address was created through NewAddress.
func (a Address) Validate() error {
	if !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// Recipient returns who receives the parcel.
func (a Address) Recipient() Recipient {
	return a.recipient
}

// Location returns the postal destination.
func (a Address) Location() Location {
	return a.location
}

// Instructions returns the free-text delivery instructions.
func (a Address) Instructions() string {
	return a.instructions
}

// AbsenteeHandling returns the policy for a missed recipient.
func (a Address) AbsenteeHandling() AbsenteeHandling {
	return a.absenteeHandling
}
