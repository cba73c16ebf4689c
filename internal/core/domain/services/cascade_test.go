package services_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/model/party"
	"freight/internal/core/domain/model/review"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOffer(t *testing.T, e *expedition.Expedition) *offer.Offer {
	t.Helper()
	o, err := offer.NewOffer(kernel.NewUUID(), e.ID(), kernel.NewUUID(), d("100"), "", time.Now(), 0)
	require.NoError(t, err)
	require.NoError(t, e.ReceiveOffer())
	return o
}

func TestOfferAcceptance_Accept(t *testing.T) {
	e := newTestExpedition(t, "Paris", "Lyon", time.Now().Add(time.Hour), expedition.Normal, "10")
	first, second, third := newTestOffer(t, e), newTestOffer(t, e), newTestOffer(t, e)
	require.NoError(t, third.Reject())
	offers := []*offer.Offer{first, second, third}

	rejected, err := services.NewOfferAcceptance().Accept(e, second, offers)

	require.NoError(t, err)
	assert.Equal(t, []*offer.Offer{first}, rejected)
	assert.Equal(t, offer.Accepted, second.Status())
	assert.Equal(t, offer.Rejected, first.Status())
	assert.Equal(t, expedition.Assigned, e.Status())

	_, err = services.NewOfferAcceptance().Accept(e, first, offers)
	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, offer.Accepted, second.Status(), "first acceptance stands")
}

func TestOfferAcceptance_NothingAppliedOnFailure(t *testing.T) {
	e := newTestExpedition(t, "Paris", "Lyon", time.Now().Add(time.Hour), expedition.Normal, "10")
	first, second := newTestOffer(t, e), newTestOffer(t, e)
	require.NoError(t, e.Cancel())

	_, err := services.NewOfferAcceptance().Accept(e, first, []*offer.Offer{first, second})

	assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	assert.Equal(t, offer.Pending, first.Status())
	assert.Equal(t, offer.Pending, second.Status())
}

func TestOfferAcceptance_ForeignOffer(t *testing.T) {
	e := newTestExpedition(t, "Paris", "Lyon", time.Now().Add(time.Hour), expedition.Normal, "10")
	other := newTestExpedition(t, "Paris", "Lyon", time.Now().Add(time.Hour), expedition.Normal, "10")
	o := newTestOffer(t, other)

	_, err := services.NewOfferAcceptance().Accept(e, o, nil)

	assert.True(t, errs.IsValidation(err))
}

func TestCancellation_CancelCourse(t *testing.T) {
	t.Run("should cascade to pending bookings", func(t *testing.T) {
		c := newTestCourse(t, "100", nil)
		pending := newTestBooking(t, c, "10", booking.Pending)
		done := newTestBooking(t, c, "10", booking.Cancelled)

		cancelled, err := services.NewCancellation().CancelCourse(c, []*booking.Booking{pending, done})

		require.NoError(t, err)
		assert.Equal(t, []*booking.Booking{pending}, cancelled)
		assert.Equal(t, booking.Cancelled, pending.Status())
		assert.Equal(t, course.Cancelled, c.Status())
	})

	t.Run("should be blocked by a confirmed booking", func(t *testing.T) {
		c := newTestCourse(t, "100", nil)
		pending := newTestBooking(t, c, "10", booking.Pending)
		confirmed := newTestBooking(t, c, "10", booking.Confirmed)

		_, err := services.NewCancellation().CancelCourse(c, []*booking.Booking{pending, confirmed})

		assert.ErrorIs(t, err, errs.ErrCancelBlocked)
		assert.Equal(t, course.Available, c.Status())
		assert.Equal(t, booking.Pending, pending.Status())
	})

	t.Run("should reject a started course", func(t *testing.T) {
		c := newTestCourse(t, "100", nil)
		require.NoError(t, c.Start())

		_, err := services.NewCancellation().CancelCourse(c, nil)

		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})
}

func TestCancellation_EnsureCourseDeletable(t *testing.T) {
	c := newTestCourse(t, "100", nil)
	cancel := services.NewCancellation()

	require.NoError(t, cancel.EnsureCourseDeletable(c, []*booking.Booking{newTestBooking(t, c, "1", booking.Pending)}))
	assert.ErrorIs(t, cancel.EnsureCourseDeletable(c, []*booking.Booking{newTestBooking(t, c, "1", booking.PickedUp)}),
		errs.ErrCancelBlocked)

	require.NoError(t, c.Fill())
	assert.ErrorIs(t, cancel.EnsureCourseDeletable(c, nil), errs.ErrIllegalTransition)
}

func TestCancellation_CancelExpedition(t *testing.T) {
	e := newTestExpedition(t, "Paris", "Lyon", time.Now().Add(time.Hour), expedition.Normal, "10")
	o := newTestOffer(t, e)

	rejected, err := services.NewCancellation().CancelExpedition(e, []*offer.Offer{o})

	require.NoError(t, err)
	assert.Equal(t, []*offer.Offer{o}, rejected)
	assert.Equal(t, offer.Rejected, o.Status())
	assert.Equal(t, expedition.Cancelled, e.Status())

	assigned := newTestExpedition(t, "Paris", "Lyon", time.Now().Add(time.Hour), expedition.Normal, "10")
	require.NoError(t, assigned.Assign())
	_, err = services.NewCancellation().CancelExpedition(assigned, nil)
	assert.ErrorIs(t, err, errs.ErrCancelBlocked)
	assert.Equal(t, expedition.Assigned, assigned.Status())
}

func TestRatingAggregator_Recompute(t *testing.T) {
	p, err := party.NewParty(kernel.NewUUID(), kernel.Carrier, "Carrier")
	require.NoError(t, err)
	var reviews []*review.Review
	for _, rating := range []int{5, 4, 4} {
		r, err := review.NewReview(kernel.NewUUID(), kernel.NewUUID(), p.ID(), rating, "", time.Now())
		require.NoError(t, err)
		reviews = append(reviews, r)
	}

	require.NoError(t, services.NewRatingAggregator().Recompute(p, reviews))
	assert.Equal(t, "4.3", p.AverageRating().String())
	assert.Equal(t, 3, p.ReviewCount())

	stray, err := review.NewReview(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 1, "", time.Now())
	require.NoError(t, err)
	assert.Error(t, services.NewRatingAggregator().Recompute(p, append(reviews, stray)))
	assert.Equal(t, 3, p.ReviewCount())
}
