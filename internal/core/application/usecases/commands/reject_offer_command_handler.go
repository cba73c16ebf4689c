package commands

import (
	"context"

	"freight/internal/core/ports"
)

type RejectOfferCommandHandler struct {
	deps Deps
}

func NewRejectOfferCommandHandler(deps Deps) RejectOfferCommandHandler {
	return RejectOfferCommandHandler{deps: deps}
}

// Handle rejects a pending offer. The expedition keeps its status.
func (h *RejectOfferCommandHandler) Handle(ctx context.Context, cmd RejectOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "reject_offer", func(ctx context.Context, uow UoW) error {
		chosen, _, err := lockOfferOfOwnedExpedition(ctx, uow, cmd.Actor(), "reject offer", cmd.TargetID())
		if err != nil {
			return err
		}
		if err = chosen.offer.Reject(); err != nil {
			return err
		}
		event = ports.NewEvent(ports.OfferRejected, chosen.offer.ID(), h.deps.Now(), chosen.offer.CarrierID()).
			With("expeditionId", chosen.expedition.ID().String())
		return uow.OfferRepository().Update(ctx, chosen.offer)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
