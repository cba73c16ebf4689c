package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// CancelExpeditionCommandHandler runs the expedition cancel cascade: pending offers
// are rejected, then the expedition is cancelled. An assigned expedition cannot be
// cancelled.
type CancelExpeditionCommandHandler struct {
	deps         Deps
	cancellation services.Cancellation
}

func NewCancelExpeditionCommandHandler(deps Deps) CancelExpeditionCommandHandler {
	return CancelExpeditionCommandHandler{deps: deps, cancellation: services.NewCancellation()}
}

func (h *CancelExpeditionCommandHandler) Handle(ctx context.Context, cmd CancelExpeditionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var events []ports.Event
	err := h.deps.Tx.Run(ctx, "cancel_expedition", func(ctx context.Context, uow UoW) error {
		exp, err := lockOwnedExpedition(ctx, uow, cmd.Actor(), "cancel expedition", cmd.TargetID())
		if err != nil {
			return err
		}
		offers, err := uow.OfferRepository().ListByExpedition(ctx, exp.ID())
		if err != nil {
			return err
		}

		rejected, err := h.cancellation.CancelExpedition(exp, offers)
		if err != nil {
			return err
		}

		if err = uow.ExpeditionRepository().Update(ctx, exp); err != nil {
			return err
		}
		now := h.deps.Now()
		recipients := []kernel.UUID{exp.SenderID()}
		events = events[:0]
		for _, o := range rejected {
			if err = uow.OfferRepository().Update(ctx, o); err != nil {
				return err
			}
			recipients = append(recipients, o.CarrierID())
			events = append(events, ports.NewEvent(ports.OfferRejected, o.ID(), now, o.CarrierID()).
				With("expeditionId", exp.ID().String()))
		}
		events = append(events, ports.NewEvent(ports.ExpeditionCancelled, exp.ID(), now, recipients...))
		return nil
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, events...)
	return nil
}
