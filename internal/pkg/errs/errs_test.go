package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)
	})
}

func TestIsValidation(t *testing.T) {
	require.True(t, errs.IsValidation(errs.NewValueIsRequiredError("weight")))
	require.True(t, errs.IsValidation(errs.NewValueIsInvalidError("weight")))
	require.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("rating", 6, 1, 5)))
	require.False(t, errs.IsValidation(errs.NewObjectNotFoundError("course", "1")))
	require.False(t, errs.IsValidation(errors.New("boom")))
}

func TestDomainErrors(t *testing.T) {
	t.Run("illegal transition", func(t *testing.T) {
		err := errs.NewIllegalTransitionError("course", "Available", "Complete")

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
		assert.Equal(t, "illegal transition: course cannot Complete while Available", err.Error())
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		err := errs.NewCapacityExceededError("kg", "1", "0")

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
		assert.Equal(t, "capacity exceeded: requested 1 kg, available 0", err.Error())
	})

	t.Run("cancel blocked", func(t *testing.T) {
		err := errs.NewCancelBlockedError("course", "confirmed bookings exist")

		require.ErrorIs(t, err, errs.ErrCancelBlocked)
		assert.Equal(t, "cancel blocked: course: confirmed bookings exist", err.Error())
	})

	t.Run("unauthorized", func(t *testing.T) {
		err := errs.NewUnauthorizedError("delete expedition", "not the owner")

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, "unauthorized: delete expedition: not the owner", err.Error())
	})

	t.Run("transient conflict keeps its cause", func(t *testing.T) {
		cause := errors.New("could not serialize access")
		err := errs.NewTransientConflictError(cause)

		require.ErrorIs(t, err, errs.ErrTransientConflict)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, "transient conflict (cause: could not serialize access)", err.Error())
	})

	t.Run("service unavailable is not transient", func(t *testing.T) {
		err := errs.NewServiceUnavailableError(4, errs.NewTransientConflictError(nil))

		require.ErrorIs(t, err, errs.ErrServiceUnavailable)
		require.NotErrorIs(t, err, errs.ErrTransientConflict)
		assert.Equal(t, "service unavailable after 4 attempts (cause: transient conflict)", err.Error())
	})
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{errs.NewValueIsRequiredError("city"), "validation"},
		{errs.NewObjectNotFoundError("course", "42"), "not_found"},
		{errs.NewUnauthorizedError("cancel course", "caller is not the owner"), "unauthorized"},
		{fmt.Errorf("wrapped: %w", errs.NewIllegalTransitionError("course", "Available", "Complete")), "illegal_transition"},
		{errs.NewCapacityExceededError("kg", "1", "0"), "capacity_exceeded"},
		{errs.NewCancelBlockedError("course", "1 booking(s) confirmed"), "cancel_blocked"},
		{errs.ErrDuplicateReview, "duplicate_review"},
		{errs.ErrSelfReview, "self_review"},
		{fmt.Errorf("%w: %w", errs.ErrInvalidRating, errs.NewValueIsOutOfRangeError("rating", 6, 1, 5)), "invalid_rating"},
		{errs.NewTransientConflictError(errors.New("40001")), "transient_conflict"},
		{errs.NewServiceUnavailableError(3, errs.NewTransientConflictError(errors.New("40P01"))), "service_unavailable"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errs.Kind(tt.err), "%v", tt.err)
	}
}
