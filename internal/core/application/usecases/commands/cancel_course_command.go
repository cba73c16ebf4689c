package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrCancelCourseCommandIsNotConstructed = errors.New(
	"CancelCourseCommand must be created via NewCancelCourseCommand constructor",
)

// CancelCourseCommand cancels a course and its pending bookings.
type CancelCourseCommand struct {
	target
}

func NewCancelCourseCommand(actor kernel.Actor, courseID kernel.UUID) (CancelCourseCommand, error) {
	t, err := newTarget(actor, courseID)
	if err != nil {
		return CancelCourseCommand{}, err
	}
	return CancelCourseCommand{target: t}, nil
}

func (c CancelCourseCommand) Validate() error {
	return c.validate(ErrCancelCourseCommandIsNotConstructed)
}
