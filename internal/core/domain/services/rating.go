package services

import (
	"fmt"

	"freight/internal/core/domain/model/party"
	"freight/internal/core/domain/model/review"
	"freight/internal/pkg/errs"
)

// RatingAggregator recomputes a party's rating from its full review set.
type RatingAggregator struct{}

func NewRatingAggregator() RatingAggregator {
	return RatingAggregator{}
}

// Recompute sets p's average and count from reviews, which must all address p.
func (RatingAggregator) Recompute(p *party.Party, reviews []*review.Review) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		if !r.ReviewedID().IsEqual(p.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("reviews",
				fmt.Errorf("review %s addresses %s, not %s", r.ID(), r.ReviewedID(), p.ID()))
		}
		ratings = append(ratings, r.Rating())
	}
	p.ApplyRatings(ratings)
	return nil
}
