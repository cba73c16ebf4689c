package commands

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSubmitOfferCommandIsNotConstructed = errors.New(
	"SubmitOfferCommand must be created via NewSubmitOfferCommand constructor",
)

// SubmitOfferCommand represents a carrier proposing a price for an open expedition.
type SubmitOfferCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	offerID      kernel.UUID
	expeditionID kernel.UUID
	price        decimal.Decimal
	message      string

	guard guard.ConstructorGuard
}

func NewSubmitOfferCommand(
	actor kernel.Actor,
	offerID, expeditionID kernel.UUID,
	price decimal.Decimal,
	message string,
) (SubmitOfferCommand, error) {
	if err := errors.Join(
		offerID.Validate(),
		expeditionID.Validate(),
		kernel.RequirePositive("price", price),
	); err != nil {
		return SubmitOfferCommand{}, err
	}

	return SubmitOfferCommand{
		actor:        actor,
		offerID:      offerID,
		expeditionID: expeditionID,
		price:        price,
		message:      strings.TrimSpace(message),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitOfferCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOfferCommandIsNotConstructed)
}

func (c SubmitOfferCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SubmitOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

func (c SubmitOfferCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

func (c SubmitOfferCommand) Price() decimal.Decimal {
	return c.price
}

func (c SubmitOfferCommand) Message() string {
	return c.message
}
