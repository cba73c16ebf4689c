package commands

import (
	"errors"

	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
)

var ErrUpdateExpeditionCommandIsNotConstructed = errors.New(
	"UpdateExpeditionCommand must be created via NewUpdateExpeditionCommand constructor",
)

// UpdateExpeditionCommand replaces the details of a Draft or Published expedition.
type UpdateExpeditionCommand struct {
	target
	details expedition.Details
}

func NewUpdateExpeditionCommand(
	actor kernel.Actor,
	expeditionID kernel.UUID,
	details expedition.Details,
) (UpdateExpeditionCommand, error) {
	t, err := newTarget(actor, expeditionID)
	if err = errors.Join(err, details.Validate()); err != nil {
		return UpdateExpeditionCommand{}, err
	}
	return UpdateExpeditionCommand{target: t, details: details}, nil
}

func (c UpdateExpeditionCommand) Validate() error {
	return c.validate(ErrUpdateExpeditionCommandIsNotConstructed)
}

func (c UpdateExpeditionCommand) Details() expedition.Details {
	return c.details
}
