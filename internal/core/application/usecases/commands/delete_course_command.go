package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrDeleteCourseCommandIsNotConstructed = errors.New(
	"DeleteCourseCommand must be created via NewDeleteCourseCommand constructor",
)

// DeleteCourseCommand removes an Available course without committed bookings.
type DeleteCourseCommand struct {
	target
}

func NewDeleteCourseCommand(actor kernel.Actor, courseID kernel.UUID) (DeleteCourseCommand, error) {
	t, err := newTarget(actor, courseID)
	if err != nil {
		return DeleteCourseCommand{}, err
	}
	return DeleteCourseCommand{target: t}, nil
}

func (c DeleteCourseCommand) Validate() error {
	return c.validate(ErrDeleteCourseCommandIsNotConstructed)
}
