package queries

import (
	"errors"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentsDueBeforeQueryIsNotConstructed = errors.New(
	"GetShipmentsDueBeforeQuery must be created via NewGetShipmentsDueBeforeQuery constructor",
)

// GetShipmentsDueBeforeQuery retrieves undelivered shipments whose promised
// delivery time falls before a cutoff. With the cutoff at now this is the
// "currently delayed" listing used by the sweep job and operations.
type GetShipmentsDueBeforeQuery struct {
	dueBefore time.Time

	guard guard.ConstructorGuard
}

// NewGetShipmentsDueBeforeQuery creates a due-before list query.
func NewGetShipmentsDueBeforeQuery(dueBefore time.Time) (GetShipmentsDueBeforeQuery, error) {
	if dueBefore.IsZero() {
		return GetShipmentsDueBeforeQuery{}, errs.NewValueIsRequiredError("due before")
	}

	return GetShipmentsDueBeforeQuery{
		dueBefore: dueBefore,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsDueBeforeQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsDueBeforeQueryIsNotConstructed)
}

// DueBefore returns the cutoff time.
func (q GetShipmentsDueBeforeQuery) DueBefore() time.Time {
	return q.dueBefore
}
