package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/party"
)

// PartyRepository defines the persistence contract for party aggregates.
type PartyRepository interface {
	// Add persists a newly registered party.
	Add(ctx context.Context, aggregate *party.Party) error

	// Update persists the rating aggregate and profile of an existing party.
	Update(ctx context.Context, aggregate *party.Party) error

	// Get retrieves a party without locking it.
	Get(ctx context.Context, id kernel.UUID) (*party.Party, error)

	// GetForUpdate retrieves a party and locks its row until the transaction ends.
	// Reviews of the party are serialized on this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*party.Party, error)
}
