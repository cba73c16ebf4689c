package commands

import (
	"context"

	"freight/internal/core/domain/services"
)

// DeleteCourseCommandHandler removes an Available course. Its pending bookings go with it.
type DeleteCourseCommandHandler struct {
	deps         Deps
	cancellation services.Cancellation
}

func NewDeleteCourseCommandHandler(deps Deps) DeleteCourseCommandHandler {
	return DeleteCourseCommandHandler{deps: deps, cancellation: services.NewCancellation()}
}

func (h *DeleteCourseCommandHandler) Handle(ctx context.Context, cmd DeleteCourseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.Tx.Run(ctx, "delete_course", func(ctx context.Context, uow UoW) error {
		c, err := lockOwnedCourse(ctx, uow, cmd.Actor(), "delete course", cmd.TargetID())
		if err != nil {
			return err
		}
		bookings, err := uow.BookingRepository().ListByCourse(ctx, c.ID())
		if err != nil {
			return err
		}
		if err = h.cancellation.EnsureCourseDeletable(c, bookings); err != nil {
			return err
		}
		return uow.CourseRepository().Delete(ctx, c.ID())
	})
}
