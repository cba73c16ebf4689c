package commands

import (
	"context"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// target is the common shape of commands that act on one existing aggregate
// on behalf of an actor.
type target struct {
	actor kernel.Actor
	id    kernel.UUID

	guard guard.ConstructorGuard
}

func newTarget(actor kernel.Actor, id kernel.UUID) (target, error) {
	if err := id.Validate(); err != nil {
		return target{}, err
	}
	return target{actor: actor, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (t target) validate(notConstructed error) error {
	return t.guard.Validate(notConstructed)
}

// Actor returns who issues the command.
func (t target) Actor() kernel.Actor {
	return t.actor
}

// TargetID returns the identifier of the aggregate the command acts on.
func (t target) TargetID() kernel.UUID {
	return t.id
}

// lockOwnedExpedition locks an expedition and checks that actor is its sender.
func lockOwnedExpedition(
	ctx context.Context,
	uow UoW,
	actor kernel.Actor,
	action string,
	id kernel.UUID,
) (*expedition.Expedition, error) {
	if err := actor.Require(action, kernel.Sender); err != nil {
		return nil, err
	}
	exp, err := uow.ExpeditionRepository().GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = actor.RequireOwner(action, exp.SenderID()); err != nil {
		return nil, err
	}
	return exp, nil
}

// lockOwnedCourse locks a course and checks that actor is its carrier.
func lockOwnedCourse(
	ctx context.Context,
	uow UoW,
	actor kernel.Actor,
	action string,
	id kernel.UUID,
) (*course.Course, error) {
	if err := actor.Require(action, kernel.Carrier); err != nil {
		return nil, err
	}
	c, err := uow.CourseRepository().GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = actor.RequireOwner(action, c.CarrierID()); err != nil {
		return nil, err
	}
	return c, nil
}

// lockedOffer is an offer re-read after its expedition was locked.
type lockedOffer struct {
	offer      *offer.Offer
	expedition *expedition.Expedition
}

// lockOfferOfOwnedExpedition locks the expedition of offerID, checks that actor is its
// sender and returns the offer together with every offer of the expedition, all read
// under the lock.
func lockOfferOfOwnedExpedition(
	ctx context.Context,
	uow UoW,
	actor kernel.Actor,
	action string,
	offerID kernel.UUID,
) (lockedOffer, []*offer.Offer, error) {
	if err := actor.Require(action, kernel.Sender); err != nil {
		return lockedOffer{}, nil, err
	}
	o, err := uow.OfferRepository().Get(ctx, offerID)
	if err != nil {
		return lockedOffer{}, nil, err
	}
	exp, err := lockOwnedExpedition(ctx, uow, actor, action, o.ExpeditionID())
	if err != nil {
		return lockedOffer{}, nil, err
	}
	offers, err := uow.OfferRepository().ListByExpedition(ctx, exp.ID())
	if err != nil {
		return lockedOffer{}, nil, err
	}
	for _, candidate := range offers {
		if candidate.ID().IsEqual(offerID) {
			return lockedOffer{offer: candidate, expedition: exp}, offers, nil
		}
	}
	return lockedOffer{}, nil, errs.NewObjectNotFoundError("offer", offerID)
}
