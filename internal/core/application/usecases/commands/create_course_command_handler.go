package commands

import (
	"context"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// CreateCourseCommandHandler creates an Available course owned by the calling carrier.
type CreateCourseCommandHandler struct {
	deps Deps
}

func NewCreateCourseCommandHandler(deps Deps) CreateCourseCommandHandler {
	return CreateCourseCommandHandler{deps: deps}
}

func (h *CreateCourseCommandHandler) Handle(ctx context.Context, cmd CreateCourseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	if err := actor.Require("create course", kernel.Carrier); err != nil {
		return err
	}

	now := h.deps.Now()
	c, err := course.NewCourse(cmd.CourseID(), actor.PartyID(), cmd.Details(), now)
	if err != nil {
		return err
	}

	err = h.deps.Tx.Run(ctx, "create_course", func(ctx context.Context, uow UoW) error {
		return uow.CourseRepository().Add(ctx, c)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, ports.NewEvent(ports.CourseCreated, c.ID(), now, c.CarrierID()))
	return nil
}
