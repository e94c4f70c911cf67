package shipment

import (
	"iter"
	"time"
)

// HistoryEvent is one immutable, timestamped entry in a shipment's audit
// trail. An event describes a status change or a delivery confirmation;
// location, description and signature are optional.
type HistoryEvent struct {
	status      Status
	location    string
	timestamp   time.Time
	description string
	signature   string
}

// NewHistoryEvent creates a history event. A zero timestamp means "assign at
// append time": the log stamps the event when it is appended.
func NewHistoryEvent(status Status, location, description, signature string, timestamp time.Time) (HistoryEvent, error) {
	if err := status.Validate(); err != nil {
		return HistoryEvent{}, err
	}

	return HistoryEvent{
		status:      status,
		location:    location,
		timestamp:   timestamp,
		description: description,
		signature:   signature,
	}, nil
}

// Status returns the status recorded by the event.
func (e HistoryEvent) Status() Status { return e.status }

// Location returns where the event happened, if reported.
func (e HistoryEvent) Location() string { return e.location }

// Timestamp returns when the event was recorded.
func (e HistoryEvent) Timestamp() time.Time { return e.timestamp }

// Description returns the human-readable event description.
func (e HistoryEvent) Description() string { return e.description }

// Signature returns the confirming party's name for delivery events.
func (e HistoryEvent) Signature() string { return e.signature }

// HistoryLog is the append-only audit trail owned by one shipment.
//
// Entries preserve insertion order, are never mutated after append, and the
// log offers no removal or reordering operations at all; every
// status-changing operation on the aggregate grows it by exactly one entry.
type HistoryLog struct {
	events []HistoryEvent
}

// RestoreHistoryLog rebuilds a log from persisted events in stored order.
func RestoreHistoryLog(events []HistoryEvent) HistoryLog {
	owned := make([]HistoryEvent, len(events))
	copy(owned, events)
	return HistoryLog{events: owned}
}

// Append adds one event to the end of the log. Events with a zero timestamp
// are stamped with the current UTC time.
func (l *HistoryLog) Append(event HistoryEvent) {
	if event.timestamp.IsZero() {
		event.timestamp = time.Now().UTC()
	}
	l.events = append(l.events, event)
}

// Len returns the number of recorded events.
func (l HistoryLog) Len() int {
	return len(l.events)
}

// Last returns the most recent event, if the log is non-empty.
func (l HistoryLog) Last() (HistoryEvent, bool) {
	if len(l.events) == 0 {
		return HistoryEvent{}, false
	}
	return l.events[len(l.events)-1], true
}

// Events returns a lazy sequence over the log in insertion order.
// The sequence is finite and restartable; ranging over it never exposes a
// way to mutate the log.
func (l HistoryLog) Events() iter.Seq[HistoryEvent] {
	return func(yield func(HistoryEvent) bool) {
		for _, event := range l.events {
			if !yield(event) {
				return
			}
		}
	}
}
