package commands

import (
	"context"

	"freight/internal/core/domain/services"
)

type UpdateExpeditionCommandHandler struct {
	deps    Deps
	pricing services.PricingCalculator
}

func NewUpdateExpeditionCommandHandler(deps Deps, pricing services.PricingCalculator) UpdateExpeditionCommandHandler {
	return UpdateExpeditionCommandHandler{deps: deps, pricing: pricing}
}

// Handle locks the expedition, checks ownership and re-quotes the estimated price.
func (h *UpdateExpeditionCommandHandler) Handle(ctx context.Context, cmd UpdateExpeditionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.deps.Tx.Run(ctx, "update_expedition", func(ctx context.Context, uow UoW) error {
		exp, err := lockOwnedExpedition(ctx, uow, cmd.Actor(), "update expedition", cmd.TargetID())
		if err != nil {
			return err
		}
		if err = exp.Update(cmd.Details()); err != nil {
			return err
		}
		if err = quoteExpedition(h.pricing, exp); err != nil {
			return err
		}
		return uow.ExpeditionRepository().Update(ctx, exp)
	})
}
