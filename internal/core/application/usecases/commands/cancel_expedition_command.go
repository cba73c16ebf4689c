package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrCancelExpeditionCommandIsNotConstructed = errors.New(
	"CancelExpeditionCommand must be created via NewCancelExpeditionCommand constructor",
)

// CancelExpeditionCommand withdraws an expedition and rejects its pending offers.
type CancelExpeditionCommand struct {
	target
}

func NewCancelExpeditionCommand(actor kernel.Actor, expeditionID kernel.UUID) (CancelExpeditionCommand, error) {
	t, err := newTarget(actor, expeditionID)
	if err != nil {
		return CancelExpeditionCommand{}, err
	}
	return CancelExpeditionCommand{target: t}, nil
}

func (c CancelExpeditionCommand) Validate() error {
	return c.validate(ErrCancelExpeditionCommandIsNotConstructed)
}
