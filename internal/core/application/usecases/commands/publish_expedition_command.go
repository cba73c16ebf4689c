package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrPublishExpeditionCommandIsNotConstructed = errors.New(
	"PublishExpeditionCommand must be created via NewPublishExpeditionCommand constructor",
)

// PublishExpeditionCommand makes a draft expedition visible to carriers.
type PublishExpeditionCommand struct {
	target
}

func NewPublishExpeditionCommand(actor kernel.Actor, expeditionID kernel.UUID) (PublishExpeditionCommand, error) {
	t, err := newTarget(actor, expeditionID)
	if err != nil {
		return PublishExpeditionCommand{}, err
	}
	return PublishExpeditionCommand{target: t}, nil
}

func (c PublishExpeditionCommand) Validate() error {
	return c.validate(ErrPublishExpeditionCommandIsNotConstructed)
}
