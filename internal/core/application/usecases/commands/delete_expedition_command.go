package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrDeleteExpeditionCommandIsNotConstructed = errors.New(
	"DeleteExpeditionCommand must be created via NewDeleteExpeditionCommand constructor",
)

// DeleteExpeditionCommand removes a Draft or Published expedition with its offers.
type DeleteExpeditionCommand struct {
	target
}

func NewDeleteExpeditionCommand(actor kernel.Actor, expeditionID kernel.UUID) (DeleteExpeditionCommand, error) {
	t, err := newTarget(actor, expeditionID)
	if err != nil {
		return DeleteExpeditionCommand{}, err
	}
	return DeleteExpeditionCommand{target: t}, nil
}

func (c DeleteExpeditionCommand) Validate() error {
	return c.validate(ErrDeleteExpeditionCommandIsNotConstructed)
}
