package commands

import (
	"context"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// lockedBooking is a booking re-read from its course's booking set after the course
// row was locked.
type lockedBooking struct {
	booking  *booking.Booking
	course   *course.Course
	bookings []*booking.Booking
}

// lockBooking locks the course of bookingID and authorizes actor: the course's carrier
// always, the booking's client only when clientAllowed.
func lockBooking(
	ctx context.Context,
	uow UoW,
	actor kernel.Actor,
	action string,
	bookingID kernel.UUID,
	clientAllowed bool,
) (lockedBooking, error) {
	if actor.IsAnonymous() {
		return lockedBooking{}, errs.NewUnauthorizedError(action, "caller is anonymous")
	}
	b, err := uow.BookingRepository().Get(ctx, bookingID)
	if err != nil {
		return lockedBooking{}, err
	}
	c, err := uow.CourseRepository().GetForUpdate(ctx, b.CourseID())
	if err != nil {
		return lockedBooking{}, err
	}
	if !actor.Is(c.CarrierID()) && !(clientAllowed && actor.Is(b.ClientID())) {
		return lockedBooking{}, errs.NewUnauthorizedError(action, "caller is not the course's carrier")
	}

	bookings, err := uow.BookingRepository().ListByCourse(ctx, c.ID())
	if err != nil {
		return lockedBooking{}, err
	}
	for _, candidate := range bookings {
		if candidate.ID().IsEqual(bookingID) {
			return lockedBooking{booking: candidate, course: c, bookings: bookings}, nil
		}
	}
	return lockedBooking{}, errs.NewObjectNotFoundError("booking", bookingID)
}
