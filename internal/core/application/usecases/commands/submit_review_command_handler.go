package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/review"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// SubmitReviewCommandHandler inserts a review and recomputes the reviewed party's
// rating from its full review set in the same transaction.
//
// Reviews of one party are serialized on the party row lock. The duplicate pre-check
// gives a clean error; the unique index on (reviewer, reviewed) backs it up.
type SubmitReviewCommandHandler struct {
	deps       Deps
	aggregator services.RatingAggregator
}

func NewSubmitReviewCommandHandler(deps Deps) SubmitReviewCommandHandler {
	return SubmitReviewCommandHandler{deps: deps, aggregator: services.NewRatingAggregator()}
}

func (h *SubmitReviewCommandHandler) Handle(ctx context.Context, cmd SubmitReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor := cmd.Actor()
	if actor.IsAnonymous() {
		return errs.NewUnauthorizedError("submit review", "caller is anonymous")
	}

	now := h.deps.Now()
	r, err := review.NewReview(cmd.ReviewID(), actor.PartyID(), cmd.ReviewedID(), cmd.Rating(), cmd.Comment(), now)
	if err != nil {
		return err
	}

	var event ports.Event
	err = h.deps.Tx.Run(ctx, "submit_review", func(ctx context.Context, uow UoW) error {
		reviewed, err := uow.PartyRepository().GetForUpdate(ctx, r.ReviewedID())
		if err != nil {
			return err
		}

		exists, err := uow.ReviewRepository().Exists(ctx, r.ReviewerID(), r.ReviewedID())
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s already reviewed %s", errs.ErrDuplicateReview, r.ReviewerID(), r.ReviewedID())
		}
		if err = uow.ReviewRepository().Add(ctx, r); err != nil {
			return err
		}

		reviews, err := uow.ReviewRepository().ListByReviewed(ctx, reviewed.ID())
		if err != nil {
			return err
		}
		if err = h.aggregator.Recompute(reviewed, reviews); err != nil {
			return err
		}

		event = ports.NewEvent(ports.ReviewSubmitted, r.ID(), now, reviewed.ID()).
			With("rating", fmt.Sprint(r.Rating())).
			With("averageRating", reviewed.AverageRating().StringFixed(1))
		return uow.PartyRepository().Update(ctx, reviewed)
	})
	if err != nil {
		return err
	}

	h.deps.Events.Publish(ctx, event)
	return nil
}
