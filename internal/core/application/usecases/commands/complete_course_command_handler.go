package commands

import (
	"context"

	"freight/internal/core/ports"
)

type CompleteCourseCommandHandler struct {
	deps Deps
}

func NewCompleteCourseCommandHandler(deps Deps) CompleteCourseCommandHandler {
	return CompleteCourseCommandHandler{deps: deps}
}

func (h *CompleteCourseCommandHandler) Handle(ctx context.Context, cmd CompleteCourseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "complete_course", func(ctx context.Context, uow UoW) error {
		c, err := lockOwnedCourse(ctx, uow, cmd.Actor(), "complete course", cmd.TargetID())
		if err != nil {
			return err
		}
		bookings, err := uow.BookingRepository().ListByCourse(ctx, c.ID())
		if err != nil {
			return err
		}
		if err = c.Complete(); err != nil {
			return err
		}
		event = ports.NewEvent(ports.CourseCompleted, c.ID(), h.deps.Now(), courseAudience(c, bookings)...)
		return uow.CourseRepository().Update(ctx, c)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
