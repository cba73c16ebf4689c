package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/review"
)

// ReviewRepository defines the persistence contract for reviews.
type ReviewRepository interface {
	// Add inserts a review. A second review of the same pair fails with errs.ErrDuplicateReview.
	Add(ctx context.Context, r *review.Review) error

	// Exists reports whether reviewer already reviewed reviewed.
	Exists(ctx context.Context, reviewerID, reviewedID kernel.UUID) (bool, error)

	// ListByReviewed returns every review addressed to a party.
	ListByReviewed(ctx context.Context, reviewedID kernel.UUID) ([]*review.Review, error)
}
