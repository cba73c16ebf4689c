package commands

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// SubmitOfferCommandHandler records an offer and moves the expedition to OffersReceived.
// Offers on the same expedition are serialized on the expedition lock.
type SubmitOfferCommandHandler struct {
	deps     Deps
	offerTTL time.Duration
}

// NewSubmitOfferCommandHandler creates the handler. Offers expire offerTTL after
// submission; zero keeps them open until accepted or rejected.
func NewSubmitOfferCommandHandler(deps Deps, offerTTL time.Duration) SubmitOfferCommandHandler {
	return SubmitOfferCommandHandler{deps: deps, offerTTL: offerTTL}
}

func (h *SubmitOfferCommandHandler) Handle(ctx context.Context, cmd SubmitOfferCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	if err := actor.Require("submit offer", kernel.Carrier); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "submit_offer", func(ctx context.Context, uow UoW) error {
		exp, err := uow.ExpeditionRepository().GetForUpdate(ctx, cmd.ExpeditionID())
		if err != nil {
			return err
		}
		if !exp.IsActive() {
			return errs.NewIllegalTransitionError("expedition", exp.Status().String(), "ReceiveOffer")
		}

		now := h.deps.Now()
		o, err := offer.NewOffer(cmd.OfferID(), exp.ID(), actor.PartyID(), cmd.Price(), cmd.Message(), now, h.offerTTL)
		if err != nil {
			return err
		}
		if err = exp.ReceiveOffer(); err != nil {
			return err
		}

		if err = uow.OfferRepository().Add(ctx, o); err != nil {
			return err
		}
		event = ports.NewEvent(ports.OfferSubmitted, o.ID(), now, exp.SenderID()).
			With("expeditionId", exp.ID().String()).
			With("price", o.Price().StringFixed(2))
		return uow.ExpeditionRepository().Update(ctx, exp)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
