// Package errs provides standardized error types for the shipping application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ObjectAlreadyExistsError: For uniqueness conflicts surfaced by the store
//   - InvalidStateError: For operations illegal in the current lifecycle state
//   - VersionConflictError: For failed optimistic concurrency checks
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The four error kinds a caller of the shipment operations can observe map onto
// this package as follows: validation failures are ValueIsRequired, ValueIsInvalid
// or ValueIsOutOfRange; duplicate order references or tracking numbers are
// ObjectAlreadyExists; illegal repeats of terminal operations are InvalidState;
// and unknown shipment identifiers are ObjectNotFound. VersionConflict is an
// internal concern of the write path and is resolved before results reach callers.
package errs
