package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrCompleteCourseCommandIsNotConstructed = errors.New(
	"CompleteCourseCommand must be created via NewCompleteCourseCommand constructor",
)

// CompleteCourseCommand closes a course that is in progress.
type CompleteCourseCommand struct {
	target
}

func NewCompleteCourseCommand(actor kernel.Actor, courseID kernel.UUID) (CompleteCourseCommand, error) {
	t, err := newTarget(actor, courseID)
	if err != nil {
		return CompleteCourseCommand{}, err
	}
	return CompleteCourseCommand{target: t}, nil
}

func (c CompleteCourseCommand) Validate() error {
	return c.validate(ErrCompleteCourseCommandIsNotConstructed)
}
