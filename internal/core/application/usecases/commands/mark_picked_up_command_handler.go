package commands

import (
	"context"

	"freight/internal/core/ports"
)

type MarkPickedUpCommandHandler struct {
	deps Deps
}

func NewMarkPickedUpCommandHandler(deps Deps) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{deps: deps}
}

func (h *MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "mark_picked_up", func(ctx context.Context, uow UoW) error {
		locked, err := lockBooking(ctx, uow, cmd.Actor(), "mark booking picked up", cmd.TargetID(), false)
		if err != nil {
			return err
		}
		if err = locked.booking.PickUp(); err != nil {
			return err
		}
		event = bookingEvent(ports.BookingPickedUp, locked, h.deps)
		return uow.BookingRepository().Update(ctx, locked.booking)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
