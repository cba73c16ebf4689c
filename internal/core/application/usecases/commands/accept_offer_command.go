package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
)

var ErrAcceptOfferCommandIsNotConstructed = errors.New(
	"AcceptOfferCommand must be created via NewAcceptOfferCommand constructor",
)

// AcceptOfferCommand accepts one offer: the expedition is assigned to its carrier
// and every other pending offer is rejected.
type AcceptOfferCommand struct {
	target
}

func NewAcceptOfferCommand(actor kernel.Actor, offerID kernel.UUID) (AcceptOfferCommand, error) {
	t, err := newTarget(actor, offerID)
	if err != nil {
		return AcceptOfferCommand{}, err
	}
	return AcceptOfferCommand{target: t}, nil
}

func (c AcceptOfferCommand) Validate() error {
	return c.validate(ErrAcceptOfferCommandIsNotConstructed)
}
