package errs

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrIllegalTransition  = errors.New("illegal transition")
	ErrCapacityExceeded   = errors.New("capacity exceeded")
	ErrCancelBlocked      = errors.New("cancel blocked")
	ErrDuplicateReview    = errors.New("duplicate review")
	ErrSelfReview         = errors.New("self review")
	ErrInvalidRating      = errors.New("invalid rating")
	ErrTransientConflict  = errors.New("transient conflict")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// UnauthorizedError reports a failed ownership or role check.
type UnauthorizedError struct {
	Action string
	Reason string
}

func NewUnauthorizedError(action, reason string) *UnauthorizedError {
	return &UnauthorizedError{Action: action, Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrUnauthorized, e.Action, e.Reason)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// IllegalTransitionError is returned by a state machine when (State, Event) has no edge.
type IllegalTransitionError struct {
	Entity string
	State  string
	Event  string
}

func NewIllegalTransitionError(entity, state, event string) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, State: state, Event: event}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot %s while %s", ErrIllegalTransition, e.Entity, e.Event, e.State)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// CapacityExceededError is returned when a reservation would oversell a course.
type CapacityExceededError struct {
	Dimension string
	Requested string
	Available string
}

func NewCapacityExceededError(dimension, requested, available string) *CapacityExceededError {
	return &CapacityExceededError{Dimension: dimension, Requested: requested, Available: available}
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: requested %s %s, available %s", ErrCapacityExceeded, e.Requested, e.Dimension, e.Available)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}

// CancelBlockedError is returned when dependents in a committed state forbid a cancel or delete.
type CancelBlockedError struct {
	Entity string
	Reason string
}

func NewCancelBlockedError(entity, reason string) *CancelBlockedError {
	return &CancelBlockedError{Entity: entity, Reason: reason}
}

func (e *CancelBlockedError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCancelBlocked, e.Entity, e.Reason)
}

func (e *CancelBlockedError) Unwrap() error {
	return ErrCancelBlocked
}

// TransientConflictError wraps a storage-level serialization failure that may succeed on retry.
type TransientConflictError struct {
	Cause error
}

func NewTransientConflictError(cause error) *TransientConflictError {
	return &TransientConflictError{Cause: cause}
}

func (e *TransientConflictError) Error() string {
	return withCause(ErrTransientConflict.Error(), e.Cause)
}

func (e *TransientConflictError) Unwrap() []error {
	return []error{ErrTransientConflict, e.Cause}
}

// ServiceUnavailableError is surfaced once transient conflicts exhausted the retry budget.
type ServiceUnavailableError struct {
	Attempts int
	Cause    error
}

func NewServiceUnavailableError(attempts int, cause error) *ServiceUnavailableError {
	return &ServiceUnavailableError{Attempts: attempts, Cause: cause}
}

func (e *ServiceUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s after %d attempts", ErrServiceUnavailable, e.Attempts), e.Cause)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return ErrServiceUnavailable
}

// Kind names the category of err for metrics labels and transport mapping.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case IsValidation(err) && !errors.Is(err, ErrInvalidRating):
		return "validation"
	case errors.Is(err, ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrCancelBlocked):
		return "cancel_blocked"
	case errors.Is(err, ErrDuplicateReview):
		return "duplicate_review"
	case errors.Is(err, ErrSelfReview):
		return "self_review"
	case errors.Is(err, ErrInvalidRating):
		return "invalid_rating"
	case errors.Is(err, ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, ErrTransientConflict):
		return "transient_conflict"
	default:
		return "internal"
	}
}
