package commands

import (
	"errors"

	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrCreateExpeditionCommandIsNotConstructed = errors.New(
	"CreateExpeditionCommand must be created via NewCreateExpeditionCommand constructor",
)

// CreateExpeditionCommand represents a sender posting a shipment request.
// The expedition is published immediately unless it is saved as a draft.
//
// Example:
//
//	cmd, err := NewCreateExpeditionCommand(actor, kernel.NewUUID(), expedition.Details{
//	    Origin:      origin,
//	    Destination: destination,
//	    Departure:   departure,
//	    Weight:      decimal.NewFromInt(120),
//	    Volume:      decimal.RequireFromString("0.8"),
//	    Urgency:     expedition.Normal,
//	}, false)
type CreateExpeditionCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	expeditionID kernel.UUID
	details      expedition.Details
	draft        bool

	guard guard.ConstructorGuard
}

// NewCreateExpeditionCommand validates the identifier and the expedition details.
func NewCreateExpeditionCommand(
	actor kernel.Actor,
	expeditionID kernel.UUID,
	details expedition.Details,
	draft bool,
) (CreateExpeditionCommand, error) {
	if err := errors.Join(expeditionID.Validate(), details.Validate()); err != nil {
		return CreateExpeditionCommand{}, err
	}

	return CreateExpeditionCommand{
		actor:        actor,
		expeditionID: expeditionID,
		details:      details,
		draft:        draft,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c CreateExpeditionCommand) Validate() error {
	return c.guard.Validate(ErrCreateExpeditionCommandIsNotConstructed)
}

func (c CreateExpeditionCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateExpeditionCommand) ExpeditionID() kernel.UUID {
	return c.expeditionID
}

func (c CreateExpeditionCommand) Details() expedition.Details {
	return c.details
}

// IsDraft reports whether the expedition is kept out of search until published.
func (c CreateExpeditionCommand) IsDraft() bool {
	return c.draft
}
