package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/core/ports"
)

// ExpireOffersCommandHandler expires overdue pending offers.
//
// Candidates are listed without locks. Each affected expedition is then handled in
// its own transaction: the expedition is locked, its offers re-read, and only offers
// that are still Pending and past their deadline are expired. An offer accepted or
// rejected in the meantime is left alone.
type ExpireOffersCommandHandler struct {
	deps Deps
}

func NewExpireOffersCommandHandler(deps Deps) ExpireOffersCommandHandler {
	return ExpireOffersCommandHandler{deps: deps}
}

// Handle returns the number of offers expired. A failing expedition does not stop
// the others; their errors are joined.
func (h *ExpireOffersCommandHandler) Handle(ctx context.Context, cmd ExpireOffersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	now := h.deps.Now()

	var candidates []*offer.Offer
	err := h.deps.Tx.Run(ctx, "list_expired_offers", func(ctx context.Context, uow UoW) error {
		var err error
		candidates, err = uow.OfferRepository().ListExpiredPending(ctx, now, cmd.Batch())
		return err
	})
	if err != nil {
		return 0, err
	}

	var expeditions []kernel.UUID
	seen := make(map[kernel.UUID]bool)
	for _, o := range candidates {
		if !seen[o.ExpeditionID()] {
			seen[o.ExpeditionID()] = true
			expeditions = append(expeditions, o.ExpeditionID())
		}
	}

	total := 0
	var errList []error
	for _, id := range expeditions {
		n, err := h.expireFor(ctx, id, now)
		if err != nil {
			errList = append(errList, fmt.Errorf("expedition %s: %w", id, err))
			continue
		}
		total += n
	}
	return total, errors.Join(errList...)
}

func (h *ExpireOffersCommandHandler) expireFor(ctx context.Context, expeditionID kernel.UUID, now time.Time) (int, error) {
	var events []ports.Event
	err := h.deps.Tx.Run(ctx, "expire_offers", func(ctx context.Context, uow UoW) error {
		exp, err := uow.ExpeditionRepository().GetForUpdate(ctx, expeditionID)
		if err != nil {
			return err
		}
		offers, err := uow.OfferRepository().ListByExpedition(ctx, exp.ID())
		if err != nil {
			return err
		}

		events = events[:0]
		for _, o := range offers {
			if !o.IsExpiredAt(now) {
				continue
			}
			if err = o.Expire(); err != nil {
				return err
			}
			if err = uow.OfferRepository().Update(ctx, o); err != nil {
				return err
			}
			events = append(events, ports.NewEvent(ports.OfferExpired, o.ID(), now, o.CarrierID(), exp.SenderID()).
				With("expeditionId", exp.ID().String()))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	h.deps.Events.Publish(ctx, events...)
	return len(events), nil
}
