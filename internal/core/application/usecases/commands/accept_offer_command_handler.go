package commands

import (
	"context"

	"freight/internal/core/domain/model/offer"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// AcceptOfferCommandHandler runs the acceptance cascade under the expedition lock:
// the chosen offer is accepted, the expedition assigned and the other pending offers
// rejected, all in one transaction. Two concurrent acceptances of the same expedition
// cannot both succeed.
type AcceptOfferCommandHandler struct {
	deps       Deps
	acceptance services.OfferAcceptance
}

func NewAcceptOfferCommandHandler(deps Deps) AcceptOfferCommandHandler {
	return AcceptOfferCommandHandler{deps: deps, acceptance: services.NewOfferAcceptance()}
}

func (h *AcceptOfferCommandHandler) Handle(ctx context.Context, cmd AcceptOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var events []ports.Event
	err := h.deps.Tx.Run(ctx, "accept_offer", func(ctx context.Context, uow UoW) error {
		chosen, offers, err := lockOfferOfOwnedExpedition(ctx, uow, cmd.Actor(), "accept offer", cmd.TargetID())
		if err != nil {
			return err
		}
		now := h.deps.Now()
		if chosen.offer.IsExpiredAt(now) {
			return errs.NewIllegalTransitionError("offer", offer.Expired.String(), offer.Accept.String())
		}

		exp := chosen.expedition
		rejected, err := h.acceptance.Accept(exp, chosen.offer, offers)
		if err != nil {
			return err
		}

		if err = uow.OfferRepository().Update(ctx, chosen.offer); err != nil {
			return err
		}
		for _, o := range rejected {
			if err = uow.OfferRepository().Update(ctx, o); err != nil {
				return err
			}
		}
		if err = uow.ExpeditionRepository().Update(ctx, exp); err != nil {
			return err
		}

		events = []ports.Event{
			ports.NewEvent(ports.OfferAccepted, chosen.offer.ID(), now, chosen.offer.CarrierID(), exp.SenderID()).
				With("expeditionId", exp.ID().String()),
		}
		for _, o := range rejected {
			events = append(events, ports.NewEvent(ports.OfferRejected, o.ID(), now, o.CarrierID()).
				With("expeditionId", exp.ID().String()))
		}
		return nil
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, events...)
	return nil
}
