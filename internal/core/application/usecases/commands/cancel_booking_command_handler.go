package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// CancelBookingCommandHandler cancels a booking and releases its capacity. A course
// that was Full becomes Available again once it has room on every dimension.
type CancelBookingCommandHandler struct {
	deps   Deps
	ledger services.CapacityLedger
}

func NewCancelBookingCommandHandler(deps Deps) CancelBookingCommandHandler {
	return CancelBookingCommandHandler{deps: deps, ledger: services.NewCapacityLedger()}
}

func (h *CancelBookingCommandHandler) Handle(ctx context.Context, cmd CancelBookingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "cancel_booking", func(ctx context.Context, uow UoW) error {
		locked, err := lockBooking(ctx, uow, cmd.Actor(), "cancel booking", cmd.TargetID(), true)
		if err != nil {
			return err
		}
		if err = locked.booking.Cancel(); err != nil {
			return err
		}

		before := locked.course.Status()
		if err = h.ledger.Release(locked.course, locked.bookings); err != nil {
			return err
		}

		if err = uow.BookingRepository().Update(ctx, locked.booking); err != nil {
			return err
		}
		if locked.course.Status() != before {
			if err = uow.CourseRepository().Update(ctx, locked.course); err != nil {
				return err
			}
		}
		event = bookingEvent(ports.BookingCancelled, locked, h.deps)
		return nil
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
