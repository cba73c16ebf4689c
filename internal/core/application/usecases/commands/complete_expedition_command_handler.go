package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

type CompleteExpeditionCommandHandler struct {
	deps Deps
}

func NewCompleteExpeditionCommandHandler(deps Deps) CompleteExpeditionCommandHandler {
	return CompleteExpeditionCommandHandler{deps: deps}
}

// Handle completes the expedition. The assigned carrier is the carrier of the
// accepted offer; it and the sender are the only parties allowed to complete.
func (h *CompleteExpeditionCommandHandler) Handle(ctx context.Context, cmd CompleteExpeditionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "complete_expedition", func(ctx context.Context, uow UoW) error {
		actor := cmd.Actor()
		if actor.IsAnonymous() {
			return errs.NewUnauthorizedError("complete expedition", "caller is anonymous")
		}
		exp, err := uow.ExpeditionRepository().GetForUpdate(ctx, cmd.TargetID())
		if err != nil {
			return err
		}
		offers, err := uow.OfferRepository().ListByExpedition(ctx, exp.ID())
		if err != nil {
			return err
		}

		var carrierID kernel.UUID
		for _, o := range offers {
			if o.Status() == offer.Accepted {
				carrierID = o.CarrierID()
			}
		}
		if !actor.Is(exp.SenderID()) && (carrierID.Validate() != nil || !actor.Is(carrierID)) {
			return errs.NewUnauthorizedError("complete expedition", "caller is neither the sender nor the assigned carrier")
		}

		if err = exp.Complete(); err != nil {
			return err
		}
		recipients := []kernel.UUID{exp.SenderID()}
		if carrierID.Validate() == nil {
			recipients = append(recipients, carrierID)
		}
		event = ports.NewEvent(ports.ExpeditionCompleted, exp.ID(), h.deps.Now(), recipients...)
		return uow.ExpeditionRepository().Update(ctx, exp)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
