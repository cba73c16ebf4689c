package commands

import (
	"context"

	"freight/internal/core/domain/model/party"
)

// RegisterPartyCommandHandler persists a newly registered party.
type RegisterPartyCommandHandler struct {
	deps Deps
}

func NewRegisterPartyCommandHandler(deps Deps) RegisterPartyCommandHandler {
	return RegisterPartyCommandHandler{deps: deps}
}

func (h *RegisterPartyCommandHandler) Handle(ctx context.Context, cmd RegisterPartyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := party.NewParty(cmd.PartyID(), cmd.Role(), cmd.Name())
	if err != nil {
		return err
	}

	return h.deps.Tx.Run(ctx, "register_party", func(ctx context.Context, uow UoW) error {
		return uow.PartyRepository().Add(ctx, p)
	})
}
