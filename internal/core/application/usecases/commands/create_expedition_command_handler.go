package commands

import (
	"context"

	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// CreateExpeditionCommandHandler creates expeditions for senders. When the sender
// states a distance the expedition carries the quote total as its estimated price.
type CreateExpeditionCommandHandler struct {
	deps    Deps
	pricing services.PricingCalculator
}

func NewCreateExpeditionCommandHandler(deps Deps, pricing services.PricingCalculator) CreateExpeditionCommandHandler {
	return CreateExpeditionCommandHandler{deps: deps, pricing: pricing}
}

func (h *CreateExpeditionCommandHandler) Handle(ctx context.Context, cmd CreateExpeditionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	if err := actor.Require("create expedition", kernel.Sender); err != nil {
		return err
	}

	now := h.deps.Now()
	exp, err := expedition.NewExpedition(cmd.ExpeditionID(), actor.PartyID(), cmd.Details(), cmd.IsDraft(), now)
	if err != nil {
		return err
	}
	if err = quoteExpedition(h.pricing, exp); err != nil {
		return err
	}

	err = h.deps.Tx.Run(ctx, "create_expedition", func(ctx context.Context, uow UoW) error {
		return uow.ExpeditionRepository().Add(ctx, exp)
	})
	if err != nil {
		return err
	}

	if exp.Status() == expedition.Published {
		h.deps.Events.Publish(ctx, ports.NewEvent(ports.ExpeditionPublished, exp.ID(), now, exp.SenderID()))
	}
	return nil
}

// quoteExpedition sets the estimated price when the expedition states a distance.
func quoteExpedition(pricing services.PricingCalculator, exp *expedition.Expedition) error {
	distance := exp.Details().DistanceKm
	if distance == nil {
		return nil
	}
	quote, err := pricing.Estimate(exp.Weight(), exp.Volume(), *distance)
	if err != nil {
		return err
	}
	return exp.SetEstimatedPrice(quote.Total)
}
