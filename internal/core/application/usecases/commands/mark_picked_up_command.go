package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand records that the carrier picked up the goods of a confirmed booking.
type MarkPickedUpCommand struct {
	target
}

func NewMarkPickedUpCommand(actor kernel.Actor, bookingID kernel.UUID) (MarkPickedUpCommand, error) {
	t, err := newTarget(actor, bookingID)
	if err != nil {
		return MarkPickedUpCommand{}, err
	}
	return MarkPickedUpCommand{target: t}, nil
}

func (c MarkPickedUpCommand) Validate() error {
	return c.validate(ErrMarkPickedUpCommandIsNotConstructed)
}
