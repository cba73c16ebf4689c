package ports

import (
	"context"

	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
)

// ExpeditionRepository defines the persistence contract for expedition aggregates.
type ExpeditionRepository interface {
	// Add persists a new expedition. The sender must exist.
	Add(ctx context.Context, aggregate *expedition.Expedition) error

	// Update persists changes to an existing expedition.
	Update(ctx context.Context, aggregate *expedition.Expedition) error

	// Delete removes the expedition together with its offers.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an expedition without locking it.
	Get(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error)

	// GetForUpdate retrieves an expedition and locks its row until the transaction ends.
	// Offer submission, acceptance, rejection and expiry are serialized on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error)
}
