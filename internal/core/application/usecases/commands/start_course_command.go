package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrStartCourseCommandIsNotConstructed = errors.New(
	"StartCourseCommand must be created via NewStartCourseCommand constructor",
)

// StartCourseCommand marks a course as on the road. No booking can be added afterwards.
type StartCourseCommand struct {
	target
}

func NewStartCourseCommand(actor kernel.Actor, courseID kernel.UUID) (StartCourseCommand, error) {
	t, err := newTarget(actor, courseID)
	if err != nil {
		return StartCourseCommand{}, err
	}
	return StartCourseCommand{target: t}, nil
}

func (c StartCourseCommand) Validate() error {
	return c.validate(ErrStartCourseCommandIsNotConstructed)
}
