// Package shipment provides domain entities and business logic for shipment
// lifecycle tracking in the shipping system. It implements the Shipment
// aggregate root with status transitions, delivery confirmation, returns and
// an append-only event history.
//
// The package includes:
//   - Shipment: The aggregate root tying together carrier, tracking, schedule,
//     address, cost, options, history, confirmation and return data
//   - Status: A state machine that enforces valid shipment status transitions
//   - HistoryLog: The append-only audit trail of lifecycle events
//   - Pure derivation functions for delay and delivery duration, which are
//     computed on demand and never persisted
//
// Key business rules:
//   - A shipment starts in Preparing status with an empty history
//   - Delivered status can only be reached through delivery confirmation,
//     which atomically records the confirmation and the actual delivery time
//   - Delivered and Returned are terminal statuses
//   - Every status-changing operation appends exactly one history event
//   - The cost total always equals base plus additional charges
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package shipment
