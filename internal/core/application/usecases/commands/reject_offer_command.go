package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrRejectOfferCommandIsNotConstructed = errors.New(
	"RejectOfferCommand must be created via NewRejectOfferCommand constructor",
)

// RejectOfferCommand rejects one pending offer of the sender's expedition.
type RejectOfferCommand struct {
	target
}

func NewRejectOfferCommand(actor kernel.Actor, offerID kernel.UUID) (RejectOfferCommand, error) {
	t, err := newTarget(actor, offerID)
	if err != nil {
		return RejectOfferCommand{}, err
	}
	return RejectOfferCommand{target: t}, nil
}

func (c RejectOfferCommand) Validate() error {
	return c.validate(ErrRejectOfferCommandIsNotConstructed)
}
