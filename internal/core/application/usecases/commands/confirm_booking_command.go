package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrConfirmBookingCommandIsNotConstructed = errors.New(
	"ConfirmBookingCommand must be created via NewConfirmBookingCommand constructor",
)

// ConfirmBookingCommand confirms a pending booking on behalf of the course's carrier.
type ConfirmBookingCommand struct {
	target
}

func NewConfirmBookingCommand(actor kernel.Actor, bookingID kernel.UUID) (ConfirmBookingCommand, error) {
	t, err := newTarget(actor, bookingID)
	if err != nil {
		return ConfirmBookingCommand{}, err
	}
	return ConfirmBookingCommand{target: t}, nil
}

func (c ConfirmBookingCommand) Validate() error {
	return c.validate(ErrConfirmBookingCommandIsNotConstructed)
}
