package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrCompleteExpeditionCommandIsNotConstructed = errors.New(
	"CompleteExpeditionCommand must be created via NewCompleteExpeditionCommand constructor",
)

// CompleteExpeditionCommand closes an assigned expedition once the goods arrived.
// Either the sender or the carrier whose offer was accepted may complete it.
type CompleteExpeditionCommand struct {
	target
}

func NewCompleteExpeditionCommand(actor kernel.Actor, expeditionID kernel.UUID) (CompleteExpeditionCommand, error) {
	t, err := newTarget(actor, expeditionID)
	if err != nil {
		return CompleteExpeditionCommand{}, err
	}
	return CompleteExpeditionCommand{target: t}, nil
}

func (c CompleteExpeditionCommand) Validate() error {
	return c.validate(ErrCompleteExpeditionCommandIsNotConstructed)
}
