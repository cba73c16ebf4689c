// Package errs holds the error vocabulary of the freight engine.
//
// Input errors:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//   - ObjectNotFoundError
//
// Business rule rejections, terminal for the attempt that raised them:
//   - UnauthorizedError, IllegalTransitionError
//   - CapacityExceededError, CancelBlockedError
//
// Storage contention:
//   - TransientConflictError: serialization failure, deadlock or lock timeout; retried
//   - ServiceUnavailableError: a conflict that outlived the retry budget
//
// Every struct error unwraps to its sentinel (ErrValueIsRequired, ErrCapacityExceeded, ...)
// so callers match with errors.Is, and Kind maps any error onto a stable label.
package errs
