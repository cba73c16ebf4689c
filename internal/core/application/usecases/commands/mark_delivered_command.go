package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand records the delivery of a picked-up booking.
type MarkDeliveredCommand struct {
	target
}

func NewMarkDeliveredCommand(actor kernel.Actor, bookingID kernel.UUID) (MarkDeliveredCommand, error) {
	t, err := newTarget(actor, bookingID)
	if err != nil {
		return MarkDeliveredCommand{}, err
	}
	return MarkDeliveredCommand{target: t}, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.validate(ErrMarkDeliveredCommandIsNotConstructed)
}
