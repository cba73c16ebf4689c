package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// Ratings are whole stars.
const (
	MinRating = 1
	MaxRating = 5
)

// ErrReviewIsNotConstructed is returned by Validate for a zero-value Review.
var ErrReviewIsNotConstructed = errors.New("Review must be created via NewReview constructor")

// Review is one party's rating of another. A reviewer rates a given party at most once.
type Review struct {
	id         kernel.UUID
	reviewerID kernel.UUID
	reviewedID kernel.UUID
	rating     int
	comment    string
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// NewReview records a rating of reviewedID by reviewerID.
//
// Returns:
//   - ErrSelfReview when both identifiers are equal
//   - ErrInvalidRating when rating is outside MinRating..MaxRating
//   - the joined identifier errors when an identifier is nil
//
// Uniqueness per reviewer and reviewed party is enforced by storage.
func NewReview(
	id, reviewerID, reviewedID kernel.UUID,
	rating int,
	comment string,
	createdAt time.Time,
) (*Review, error) {
	if err := errors.Join(id.Validate(), reviewerID.Validate(), reviewedID.Validate()); err != nil {
		return nil, err
	}
	if reviewerID.IsEqual(reviewedID) {
		return nil, fmt.Errorf("%w: party %s cannot review itself", errs.ErrSelfReview, reviewerID)
	}
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}

	return &Review{
		id:         id,
		reviewerID: reviewerID,
		reviewedID: reviewedID,
		rating:     rating,
		comment:    strings.TrimSpace(comment),
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ValidateRating fails with ErrInvalidRating outside 1..5.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: %w", errs.ErrInvalidRating,
			errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating))
	}
	return nil
}

// Validate ensures the review was built by NewReview.
func (r *Review) Validate() error {
	if r == nil {
		return ErrReviewIsNotConstructed
	}
	return r.guard.Validate(ErrReviewIsNotConstructed)
}

// ID returns the review identifier.
func (r *Review) ID() kernel.UUID {
	return r.id
}

// ReviewerID is the party who wrote the review.
func (r *Review) ReviewerID() kernel.UUID {
	return r.reviewerID
}

// ReviewedID is the party being rated.
func (r *Review) ReviewedID() kernel.UUID {
	return r.reviewedID
}

// Rating is between MinRating and MaxRating.
func (r *Review) Rating() int {
	return r.rating
}

// Comment is trimmed free text, possibly empty.
func (r *Review) Comment() string {
	return r.comment
}

// CreatedAt orders the recent reviews shown with a rating.
func (r *Review) CreatedAt() time.Time {
	return r.createdAt
}
