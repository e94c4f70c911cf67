package shipment

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"shipping/internal/pkg/errs"
)

// ErrOptionsIsNotConstructed is returned when an Options value was not
// created through the NewOptions factory function.
var ErrOptionsIsNotConstructed = errors.New("Options must be created via NewOptions constructor")

// DeliveryMethod is the service level the sender paid for.
type DeliveryMethod int

const (
	MethodUnknown DeliveryMethod = iota
	MethodStandard
	MethodExpress
	MethodOvernight
	MethodSameDay
)

func getDeliveryMethodStrings() map[DeliveryMethod]string {
	return map[DeliveryMethod]string{
		MethodStandard:  "standard",
		MethodExpress:   "express",
		MethodOvernight: "overnight",
		MethodSameDay:   "same_day",
	}
}

// DeliveryMethodFromString parses the wire/storage representation.
func DeliveryMethodFromString(s string) (DeliveryMethod, error) {
	for method, str := range getDeliveryMethodStrings() {
		if str == s {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("method",
		fmt.Errorf("%q is not a valid delivery method", s))
}

// Validate checks the method is one of the four defined service levels.
func (m DeliveryMethod) Validate() error {
	if _, ok := getDeliveryMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("method",
			fmt.Errorf("%d is not a valid delivery method", m))
	}
	return nil
}

// String returns the lowercase name, e.g. "same_day".
func (m DeliveryMethod) String() string {
	if str, ok := getDeliveryMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// SpecialHandling is a parcel handling requirement flag.
type SpecialHandling int

const (
	HandlingUnknown SpecialHandling = iota
	HandlingFragile
	HandlingColdChain
	HandlingHazardous
	HandlingOversized
)

func getSpecialHandlingStrings() map[SpecialHandling]string {
	return map[SpecialHandling]string{
		HandlingFragile:   "fragile",
		HandlingColdChain: "cold_chain",
		HandlingHazardous: "hazardous",
		HandlingOversized: "oversized",
	}
}

// SpecialHandlingFromString parses the wire/storage representation.
func SpecialHandlingFromString(s string) (SpecialHandling, error) {
	for handling, str := range getSpecialHandlingStrings() {
		if str == s {
			return handling, nil
		}
	}
	return HandlingUnknown, errs.NewValueIsInvalidErrorWithCause("specialHandling",
		fmt.Errorf("%q is not a valid special handling", s))
}

// Validate checks the flag is one of the four defined requirements.
func (h SpecialHandling) Validate() error {
	if _, ok := getSpecialHandlingStrings()[h]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("specialHandling",
			fmt.Errorf("%d is not a valid special handling", h))
	}
	return nil
}

// String returns the lowercase name, e.g. "cold_chain".
func (h SpecialHandling) String() string {
	if str, ok := getSpecialHandlingStrings()[h]; ok {
		return str
	}
	return "unknown"
}

// Insurance is the declared-value coverage of a shipment.
type Insurance struct {
	enabled bool
	amount  int64
}

// NewInsurance creates a validated Insurance value.
// The covered amount must be non-negative.
func NewInsurance(enabled bool, amount int64) (Insurance, error) {
	if amount < 0 {
		return Insurance{}, errs.NewValueIsOutOfRangeError("insurance amount", amount, 0, int64(math.MaxInt64))
	}
	return Insurance{enabled: enabled, amount: amount}, nil
}

// Enabled reports whether the shipment is insured.
func (i Insurance) Enabled() bool { return i.enabled }

// Amount returns the covered amount in the smallest currency unit.
func (i Insurance) Amount() int64 { return i.amount }

// Options groups the sender-chosen delivery options of a shipment.
// The special handling flags behave as a set: duplicates collapse and the
// stored order is canonical.
type Options struct {
	method          DeliveryMethod
	specialHandling []SpecialHandling
	insurance       Insurance

	isConstructed bool
}

// NewOptions creates validated Options.
func NewOptions(method DeliveryMethod, specialHandling []SpecialHandling, insurance Insurance) (Options, error) {
	if err := method.Validate(); err != nil {
		return Options{}, err
	}
	if insurance.amount < 0 {
		return Options{}, errs.NewValueIsOutOfRangeError("insurance amount", insurance.amount, 0, int64(math.MaxInt64))
	}

	seen := make(map[SpecialHandling]struct{}, len(specialHandling))
	flags := make([]SpecialHandling, 0, len(specialHandling))
	for _, h := range specialHandling {
		if err := h.Validate(); err != nil {
			return Options{}, err
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		flags = append(flags, h)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })

	return Options{
		method:          method,
		specialHandling: flags,
		insurance:       insurance,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Options were created through NewOptions.
func (o Options) Validate() error {
	if !o.isConstructed {
		return ErrOptionsIsNotConstructed
	}
	return nil
}

// Method returns the paid service level.
func (o Options) Method() DeliveryMethod {
	return o.method
}

// SpecialHandling returns the canonical, deduplicated handling flags.
func (o Options) SpecialHandling() []SpecialHandling {
	out := make([]SpecialHandling, len(o.specialHandling))
	copy(out, o.specialHandling)
	return out
}

// Insurance returns the declared-value coverage.
func (o Options) Insurance() Insurance {
	return o.insurance
}
