package services

import (
	"fmt"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/offer"
	"freight/internal/pkg/errs"
)

// Cancellation plans and applies the cancel and delete cascades of courses and
// expeditions. Like OfferAcceptance, every check runs before the first mutation.
type Cancellation struct{}

func NewCancellation() Cancellation {
	return Cancellation{}
}

// CancelCourse cancels c and every pending booking on it. Any confirmed or picked-up
// booking blocks the cancel. Returns the bookings that were cancelled.
func (Cancellation) CancelCourse(c *course.Course, bookings []*booking.Booking) ([]*booking.Booking, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ensureNoCommittedBookings(bookings); err != nil {
		return nil, err
	}
	if !course.Transitions().Can(c.Status(), course.Cancel) {
		return nil, errs.NewIllegalTransitionError("course", c.Status().String(), course.Cancel.String())
	}

	var cancelled []*booking.Booking
	for _, b := range bookings {
		if b.Status() == booking.Pending {
			cancelled = append(cancelled, b)
		}
	}
	for _, b := range cancelled {
		if err := b.Cancel(); err != nil {
			return nil, err
		}
	}
	if err := c.Cancel(); err != nil {
		return nil, err
	}
	return cancelled, nil
}

// EnsureCourseDeletable allows deleting an Available course without committed bookings.
// Deletion removes its bookings with it.
func (Cancellation) EnsureCourseDeletable(c *course.Course, bookings []*booking.Booking) error {
	if err := c.EnsureDeletable(); err != nil {
		return err
	}
	return ensureNoCommittedBookings(bookings)
}

// CancelExpedition cancels exp and rejects its pending offers. An assigned expedition
// is bound to a carrier and cannot be cancelled. Returns the offers that were rejected.
func (Cancellation) CancelExpedition(exp *expedition.Expedition, offers []*offer.Offer) ([]*offer.Offer, error) {
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	if exp.Status() == expedition.Assigned {
		return nil, errs.NewCancelBlockedError("expedition", "an offer has been accepted")
	}
	if !expedition.Transitions().Can(exp.Status(), expedition.Cancel) {
		return nil, errs.NewIllegalTransitionError("expedition", exp.Status().String(), expedition.Cancel.String())
	}

	var rejected []*offer.Offer
	for _, o := range offers {
		if o.Status() == offer.Pending {
			rejected = append(rejected, o)
		}
	}
	for _, o := range rejected {
		if err := o.Reject(); err != nil {
			return nil, err
		}
	}
	if err := exp.Cancel(); err != nil {
		return nil, err
	}
	return rejected, nil
}

func ensureNoCommittedBookings(bookings []*booking.Booking) error {
	committed := 0
	for _, b := range bookings {
		if b.Status().IsCommitted() {
			committed++
		}
	}
	if committed > 0 {
		return errs.NewCancelBlockedError("course", fmt.Sprintf("%d booking(s) confirmed or picked up", committed))
	}
	return nil
}
