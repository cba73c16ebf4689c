package commands

import (
	"context"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

type StartCourseCommandHandler struct {
	deps Deps
}

func NewStartCourseCommandHandler(deps Deps) StartCourseCommandHandler {
	return StartCourseCommandHandler{deps: deps}
}

// Handle starts the course and tells every client with a live booking.
func (h *StartCourseCommandHandler) Handle(ctx context.Context, cmd StartCourseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "start_course", func(ctx context.Context, uow UoW) error {
		c, err := lockOwnedCourse(ctx, uow, cmd.Actor(), "start course", cmd.TargetID())
		if err != nil {
			return err
		}
		bookings, err := uow.BookingRepository().ListByCourse(ctx, c.ID())
		if err != nil {
			return err
		}
		if err = c.Start(); err != nil {
			return err
		}
		event = ports.NewEvent(ports.CourseStarted, c.ID(), h.deps.Now(), courseAudience(c, bookings)...)
		return uow.CourseRepository().Update(ctx, c)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}

// courseAudience is the carrier followed by the clients of bookings that still count.
func courseAudience(c *course.Course, bookings []*booking.Booking) []kernel.UUID {
	recipients := []kernel.UUID{c.CarrierID()}
	seen := map[kernel.UUID]bool{c.CarrierID(): true}
	for _, b := range bookings {
		if b.CountsTowardsCapacity() && !seen[b.ClientID()] {
			seen[b.ClientID()] = true
			recipients = append(recipients, b.ClientID())
		}
	}
	return recipients
}
