package shipment

import (
	"errors"
	"strings"

	"shipping/internal/pkg/errs"
)

// ErrCarrierIsNotConstructed is returned when a Carrier value was not created
// through the NewCarrier factory function.
var ErrCarrierIsNotConstructed = errors.New("Carrier must be created via NewCarrier constructor")

// CarrierContact holds the carrier's customer-facing contact channels.
// Both fields are optional opaque data; the engine never dials or fetches them.
type CarrierContact struct {
	phone   string
	website string
}

// NewCarrierContact creates a contact value. Empty fields are allowed.
func NewCarrierContact(phone, website string) CarrierContact {
	return CarrierContact{phone: phone, website: website}
}

// Phone returns the carrier's support phone number.
func (c CarrierContact) Phone() string {
	return c.phone
}

// Website returns the carrier's website URL.
func (c CarrierContact) Website() string {
	return c.website
}

// Carrier identifies the delivery company moving the parcel.
// Name and code are required; the closed set of accepted names is an
// application-level configuration concern (see CarrierDirectory), not a rule
// baked into this value object.
type Carrier struct {
	name    string
	code    string
	contact CarrierContact

	isConstructed bool
}

// NewCarrier creates a validated Carrier value.
// Name and code must be non-empty.
func NewCarrier(name, code string, contact CarrierContact) (Carrier, error) {
	if strings.TrimSpace(name) == "" {
		return Carrier{}, errs.NewValueIsRequiredError("carrier name")
	}
	if strings.TrimSpace(code) == "" {
		return Carrier{}, errs.NewValueIsRequiredError("carrier code")
	}

	return Carrier{
		name:          name,
		code:          code,
		contact:       contact,
		isConstructed: true,
	}, nil
}

// Validate ensures the Carrier was created through NewCarrier.
func (c Carrier) Validate() error {
	if !c.isConstructed {
		return ErrCarrierIsNotConstructed
	}
	return nil
}

// Name returns the carrier's display name.
func (c Carrier) Name() string {
	return c.name
}

// Code returns the carrier's short code used on labels and in queries.
func (c Carrier) Code() string {
	return c.code
}

// Contact returns the carrier's contact channels.
func (c Carrier) Contact() CarrierContact {
	return c.contact
}

// CarrierDirectory is the closed set of carrier names the business works with.
// It is populated from configuration at startup and injected into the
// application layer; the set is data, not control flow, so adding a carrier
// never requires an engine change.
type CarrierDirectory struct {
	names map[string]struct{}
}

// NewCarrierDirectory builds a directory from the configured carrier names.
// Blank entries are ignored.
func NewCarrierDirectory(names []string) CarrierDirectory {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return CarrierDirectory{names: set}
}

// Contains reports whether name is one of the configured carriers.
func (d CarrierDirectory) Contains(name string) bool {
	_, ok := d.names[name]
	return ok
}

// Names returns the configured carrier names in unspecified order.
func (d CarrierDirectory) Names() []string {
	out := make([]string, 0, len(d.names))
	for name := range d.names {
		out = append(out, name)
	}
	return out
}
