package shipment

import (
	"math"
	"time"
)

// Derived read-time metrics. These are pure functions of persisted fields and
// are recomputed on every read; storing their results would leave them stale
// after concurrent updates.

// IsDelayed reports whether a shipment is past its promised delivery time.
// True iff no actual delivery is recorded and now is after the estimate.
// A shipment with no estimate is never delayed, and recording the actual
// delivery clears the flag no matter how late the delivery was.
func IsDelayed(estimatedDelivery time.Time, actualDelivery *time.Time, now time.Time) bool {
	if actualDelivery != nil {
		return false
	}
	if estimatedDelivery.IsZero() {
		return false
	}
	return now.After(estimatedDelivery)
}

// DeliveryDuration returns how many whole days the delivery took, rounded up:
// ceil((actualDelivery − createdAt) / 24h). The second result is false while
// the shipment is undelivered, in which case the duration is undefined.
func DeliveryDuration(createdAt time.Time, actualDelivery *time.Time) (int, bool) {
	if actualDelivery == nil {
		return 0, false
	}
	days := math.Ceil(actualDelivery.Sub(createdAt).Hours() / 24)
	return int(days), true
}
