package commands

import (
	"errors"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"
)

var ErrUpdateCourseCommandIsNotConstructed = errors.New(
	"UpdateCourseCommand must be created via NewUpdateCourseCommand constructor",
)

// UpdateCourseCommand replaces the details of an Available course. The new capacity
// may not drop below what bookings already hold.
type UpdateCourseCommand struct {
	target
	details course.Details
}

func NewUpdateCourseCommand(actor kernel.Actor, courseID kernel.UUID, details course.Details) (UpdateCourseCommand, error) {
	details.Stops = append([]string(nil), details.Stops...)
	t, err := newTarget(actor, courseID)
	if err = errors.Join(err, details.Validate()); err != nil {
		return UpdateCourseCommand{}, err
	}
	return UpdateCourseCommand{target: t, details: details}, nil
}

func (c UpdateCourseCommand) Validate() error {
	return c.validate(ErrUpdateCourseCommandIsNotConstructed)
}

func (c UpdateCourseCommand) Details() course.Details {
	return c.details
}
