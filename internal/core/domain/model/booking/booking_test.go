package booking_test

import (
	"fmt"
	"testing"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(t *testing.T) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		decimal.NewFromInt(40), nil, 2, decimal.RequireFromString("80"), time.Now())
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("should create pending booking", func(t *testing.T) {
		b := newBooking(t)

		require.NoError(t, b.Validate())
		assert.Equal(t, booking.Pending, b.Status())
		assert.Equal(t, "80.00", b.TotalPrice().StringFixed(2))
		assert.True(t, b.VolumeOrZero().IsZero())
		assert.True(t, b.CountsTowardsCapacity())
	})

	t.Run("should reject zero weight and packages", func(t *testing.T) {
		b, err := booking.NewBooking(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			decimal.Zero, nil, 0, decimal.Zero, time.Now())

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "weight")
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestBooking_Lifecycle(t *testing.T) {
	b := newBooking(t)

	require.NoError(t, b.Confirm())
	require.NoError(t, b.PickUp())
	assert.ErrorIs(t, b.Cancel(), errs.ErrIllegalTransition)
	assert.Equal(t, booking.PickedUp, b.Status())
	require.NoError(t, b.Deliver())
	assert.Equal(t, booking.Delivered, b.Status())
	assert.True(t, b.CountsTowardsCapacity())
}

func TestBooking_Cancel(t *testing.T) {
	b := newBooking(t)
	require.NoError(t, b.Confirm())

	require.NoError(t, b.Cancel())

	assert.False(t, b.CountsTowardsCapacity())
	assert.ErrorIs(t, b.Confirm(), errs.ErrIllegalTransition)
}

func TestStatus_Fire(t *testing.T) {
	statuses := []booking.Status{booking.Pending, booking.Confirmed, booking.PickedUp, booking.Delivered, booking.Cancelled}
	events := []booking.Event{booking.Confirm, booking.PickUp, booking.Deliver, booking.Cancel}
	legal := map[booking.Status]map[booking.Event]booking.Status{
		booking.Pending:   {booking.Confirm: booking.Confirmed, booking.Cancel: booking.Cancelled},
		booking.Confirmed: {booking.PickUp: booking.PickedUp, booking.Cancel: booking.Cancelled},
		booking.PickedUp:  {booking.Deliver: booking.Delivered},
	}

	for _, from := range statuses {
		for _, event := range events {
			t.Run(fmt.Sprintf("%s_%s", from, event), func(t *testing.T) {
				to, err := from.Fire(event)
				if want, ok := legal[from][event]; ok {
					require.NoError(t, err)
					assert.Equal(t, want, to)
					return
				}
				assert.ErrorIs(t, err, errs.ErrIllegalTransition)
			})
		}
	}

	assert.True(t, booking.Confirmed.IsCommitted())
	assert.True(t, booking.PickedUp.IsCommitted())
	assert.False(t, booking.Pending.IsCommitted())
}
