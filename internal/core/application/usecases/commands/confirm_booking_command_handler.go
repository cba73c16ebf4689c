package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// ConfirmBookingCommandHandler confirms a pending booking. The capacity is checked
// again under the course lock before the confirmation is written.
type ConfirmBookingCommandHandler struct {
	deps   Deps
	ledger services.CapacityLedger
}

func NewConfirmBookingCommandHandler(deps Deps) ConfirmBookingCommandHandler {
	return ConfirmBookingCommandHandler{deps: deps, ledger: services.NewCapacityLedger()}
}

func (h *ConfirmBookingCommandHandler) Handle(ctx context.Context, cmd ConfirmBookingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "confirm_booking", func(ctx context.Context, uow UoW) error {
		locked, err := lockBooking(ctx, uow, cmd.Actor(), "confirm booking", cmd.TargetID(), false)
		if err != nil {
			return err
		}
		if err = locked.booking.Confirm(); err != nil {
			return err
		}
		if err = h.ledger.VerifyWithinCapacity(locked.course, locked.bookings); err != nil {
			return err
		}
		event = bookingEvent(ports.BookingConfirmed, locked, h.deps)
		return uow.BookingRepository().Update(ctx, locked.booking)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}

func bookingEvent(t ports.EventType, locked lockedBooking, deps Deps) ports.Event {
	return ports.NewEvent(t, locked.booking.ID(), deps.Now(), locked.booking.ClientID(), locked.course.CarrierID()).
		With("courseId", locked.course.ID().String())
}
