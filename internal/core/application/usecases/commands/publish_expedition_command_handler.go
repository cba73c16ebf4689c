package commands

import (
	"context"

	"freight/internal/core/ports"
)

type PublishExpeditionCommandHandler struct {
	deps Deps
}

func NewPublishExpeditionCommandHandler(deps Deps) PublishExpeditionCommandHandler {
	return PublishExpeditionCommandHandler{deps: deps}
}

func (h *PublishExpeditionCommandHandler) Handle(ctx context.Context, cmd PublishExpeditionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var event ports.Event
	err := h.deps.Tx.Run(ctx, "publish_expedition", func(ctx context.Context, uow UoW) error {
		exp, err := lockOwnedExpedition(ctx, uow, cmd.Actor(), "publish expedition", cmd.TargetID())
		if err != nil {
			return err
		}
		if err = exp.Publish(); err != nil {
			return err
		}
		event = ports.NewEvent(ports.ExpeditionPublished, exp.ID(), h.deps.Now(), exp.SenderID())
		return uow.ExpeditionRepository().Update(ctx, exp)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
