package shipment

import (
	"errors"
	"math"

	"shipping/internal/pkg/errs"
)

// ErrCostIsNotConstructed is returned when a Cost value was not created
// through the NewCost factory function.
var ErrCostIsNotConstructed = errors.New("Cost must be created via NewCost constructor")

// Cost is the shipping price breakdown in the smallest currency unit.
//
// The total is a derived value: it always equals base + additional and is
// recomputed on construction and again by Recompute before every persist.
// The stored total column exists for reporting queries only and is never an
// input to this value object.
type Cost struct {
	base       int64
	additional int64
	total      int64

	isConstructed bool
}

// NewCost creates a validated Cost. Both components must be non-negative;
// the total is computed, never accepted.
func NewCost(base, additional int64) (Cost, error) {
	if base < 0 {
		return Cost{}, errs.NewValueIsOutOfRangeError("cost base", base, 0, int64(math.MaxInt64))
	}
	if additional < 0 {
		return Cost{}, errs.NewValueIsOutOfRangeError("cost additional", additional, 0, int64(math.MaxInt64))
	}

	return Cost{
		base:          base,
		additional:    additional,
		total:         base + additional,
		isConstructed: true,
	}, nil
}

// Validate ensures the Cost was created through NewCost.
func (c Cost) Validate() error {
	if !c.isConstructed {
		return ErrCostIsNotConstructed
	}
	return nil
}

// Base returns the base shipping charge.
func (c Cost) Base() int64 {
	return c.base
}

// Additional returns surcharges (special handling, insurance and the like).
func (c Cost) Additional() int64 {
	return c.additional
}

// Total returns the derived total, always base + additional.
func (c Cost) Total() int64 {
	return c.total
}

// Recompute returns a Cost whose total is rederived from its components.
// The store layer calls it explicitly before persisting so the recomputation
// is visible in the call graph rather than hidden in a lifecycle hook.
// Idempotent: recomputing an already consistent Cost is a no-op.
func (c Cost) Recompute() Cost {
	c.total = c.base + c.additional
	return c
}
