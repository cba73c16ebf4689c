package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"
)

// OfferRepository defines the persistence contract for offers.
type OfferRepository interface {
	Add(ctx context.Context, aggregate *offer.Offer) error

	// Update persists the status of an existing offer.
	Update(ctx context.Context, aggregate *offer.Offer) error

	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// ListByExpedition returns every offer of an expedition, oldest first.
	ListByExpedition(ctx context.Context, expeditionID kernel.UUID) ([]*offer.Offer, error)

	// ListExpiredPending returns up to limit Pending offers whose deadline is at or before now.
	ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*offer.Offer, error)
}
