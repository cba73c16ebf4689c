package commands

import (
	"context"
)

// DeleteExpeditionCommandHandler removes an expedition the sender no longer needs.
// Its offers go with it.
type DeleteExpeditionCommandHandler struct {
	deps Deps
}

func NewDeleteExpeditionCommandHandler(deps Deps) DeleteExpeditionCommandHandler {
	return DeleteExpeditionCommandHandler{deps: deps}
}

func (h *DeleteExpeditionCommandHandler) Handle(ctx context.Context, cmd DeleteExpeditionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.Tx.Run(ctx, "delete_expedition", func(ctx context.Context, uow UoW) error {
		exp, err := lockOwnedExpedition(ctx, uow, cmd.Actor(), "delete expedition", cmd.TargetID())
		if err != nil {
			return err
		}
		if err = exp.EnsureDeletable(); err != nil {
			return err
		}
		return uow.ExpeditionRepository().Delete(ctx, exp.ID())
	})
}
