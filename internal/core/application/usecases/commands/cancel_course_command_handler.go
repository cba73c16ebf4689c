package commands

import (
	"context"

	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// CancelCourseCommandHandler runs the course cancel cascade. A confirmed or
// picked-up booking blocks it; pending bookings are cancelled with the course.
type CancelCourseCommandHandler struct {
	deps         Deps
	cancellation services.Cancellation
}

func NewCancelCourseCommandHandler(deps Deps) CancelCourseCommandHandler {
	return CancelCourseCommandHandler{deps: deps, cancellation: services.NewCancellation()}
}

func (h *CancelCourseCommandHandler) Handle(ctx context.Context, cmd CancelCourseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var events []ports.Event
	err := h.deps.Tx.Run(ctx, "cancel_course", func(ctx context.Context, uow UoW) error {
		c, err := lockOwnedCourse(ctx, uow, cmd.Actor(), "cancel course", cmd.TargetID())
		if err != nil {
			return err
		}
		bookings, err := uow.BookingRepository().ListByCourse(ctx, c.ID())
		if err != nil {
			return err
		}
		audience := courseAudience(c, bookings)

		cancelled, err := h.cancellation.CancelCourse(c, bookings)
		if err != nil {
			return err
		}

		if err = uow.CourseRepository().Update(ctx, c); err != nil {
			return err
		}
		now := h.deps.Now()
		events = events[:0]
		for _, b := range cancelled {
			if err = uow.BookingRepository().Update(ctx, b); err != nil {
				return err
			}
			events = append(events, ports.NewEvent(ports.BookingCancelled, b.ID(), now, b.ClientID()).
				With("courseId", c.ID().String()))
		}
		events = append(events, ports.NewEvent(ports.CourseCancelled, c.ID(), now, audience...))
		return nil
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, events...)
	return nil
}
