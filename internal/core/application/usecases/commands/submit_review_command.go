package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrSubmitReviewCommandIsNotConstructed = errors.New(
	"SubmitReviewCommand must be created via NewSubmitReviewCommand constructor",
)

// SubmitReviewCommand represents one party rating another. The reviewer is the actor.
type SubmitReviewCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	reviewID   kernel.UUID
	reviewedID kernel.UUID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

// NewSubmitReviewCommand validates identifiers only. Rating range and self review are
// domain rules checked by the handler.
func NewSubmitReviewCommand(
	actor kernel.Actor,
	reviewID, reviewedID kernel.UUID,
	rating int,
	comment string,
) (SubmitReviewCommand, error) {
	if err := errors.Join(reviewID.Validate(), reviewedID.Validate()); err != nil {
		return SubmitReviewCommand{}, err
	}

	return SubmitReviewCommand{
		actor:      actor,
		reviewID:   reviewID,
		reviewedID: reviewedID,
		rating:     rating,
		comment:    comment,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitReviewCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReviewCommandIsNotConstructed)
}

func (c SubmitReviewCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SubmitReviewCommand) ReviewID() kernel.UUID {
	return c.reviewID
}

func (c SubmitReviewCommand) ReviewedID() kernel.UUID {
	return c.reviewedID
}

func (c SubmitReviewCommand) Rating() int {
	return c.rating
}

func (c SubmitReviewCommand) Comment() string {
	return c.comment
}
