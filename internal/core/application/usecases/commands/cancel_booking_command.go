package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrCancelBookingCommandIsNotConstructed = errors.New(
	"CancelBookingCommand must be created via NewCancelBookingCommand constructor",
)

// CancelBookingCommand cancels a pending or confirmed booking and frees its capacity.
// The course's carrier and the booking's client may both cancel.
type CancelBookingCommand struct {
	target
}

func NewCancelBookingCommand(actor kernel.Actor, bookingID kernel.UUID) (CancelBookingCommand, error) {
	t, err := newTarget(actor, bookingID)
	if err != nil {
		return CancelBookingCommand{}, err
	}
	return CancelBookingCommand{target: t}, nil
}

func (c CancelBookingCommand) Validate() error {
	return c.validate(ErrCancelBookingCommandIsNotConstructed)
}
