package commands

import (
	"context"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// CreateBookingCommandHandler reserves capacity on a course.
//
// The course row is locked before its bookings are read, so the committed weight the
// ledger computes cannot change until commit. Concurrent bookings on one course are
// serialized; their total never exceeds the course capacity.
type CreateBookingCommandHandler struct {
	deps   Deps
	ledger services.CapacityLedger
}

func NewCreateBookingCommandHandler(deps Deps) CreateBookingCommandHandler {
	return CreateBookingCommandHandler{deps: deps, ledger: services.NewCapacityLedger()}
}

func (h *CreateBookingCommandHandler) Handle(ctx context.Context, cmd CreateBookingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	if err := actor.Require("create booking", kernel.Sender); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "create_booking", func(ctx context.Context, uow UoW) error {
		c, err := uow.CourseRepository().GetForUpdate(ctx, cmd.CourseID())
		if err != nil {
			return err
		}
		bookings, err := uow.BookingRepository().ListByCourse(ctx, c.ID())
		if err != nil {
			return err
		}

		price, err := services.BookingPrice(cmd.Weight(), c.PricePerKg())
		if err != nil {
			return err
		}
		now := h.deps.Now()
		b, err := booking.NewBooking(cmd.BookingID(), c.ID(), actor.PartyID(),
			cmd.Weight(), cmd.Volume(), cmd.Packages(), price, now)
		if err != nil {
			return err
		}

		before := c.Status()
		if err = h.ledger.TryReserve(c, bookings, b.Weight(), b.Volume()); err != nil {
			return err
		}

		if err = uow.BookingRepository().Add(ctx, b); err != nil {
			return err
		}
		if c.Status() != before {
			if err = uow.CourseRepository().Update(ctx, c); err != nil {
				return err
			}
		}
		event = ports.NewEvent(ports.BookingCreated, b.ID(), now, c.CarrierID(), b.ClientID()).
			With("courseId", c.ID().String()).
			With("totalPrice", b.TotalPrice().StringFixed(2))
		return nil
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
