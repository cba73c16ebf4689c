package commands

import (
	"context"

	"freight/internal/core/ports"
)

// MarkDeliveredCommandHandler records delivery. Delivered bookings count towards
// the course's realized revenue.
type MarkDeliveredCommandHandler struct {
	deps Deps
}

func NewMarkDeliveredCommandHandler(deps Deps) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{deps: deps}
}

func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "mark_delivered", func(ctx context.Context, uow UoW) error {
		locked, err := lockBooking(ctx, uow, cmd.Actor(), "mark booking delivered", cmd.TargetID(), false)
		if err != nil {
			return err
		}
		if err = locked.booking.Deliver(); err != nil {
			return err
		}
		event = bookingEvent(ports.BookingDelivered, locked, h.deps).
			With("totalPrice", locked.booking.TotalPrice().StringFixed(2))
		return uow.BookingRepository().Update(ctx, locked.booking)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
