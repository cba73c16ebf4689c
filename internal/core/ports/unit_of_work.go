package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command attempt.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction spanning every marketplace repository.
// Row locks taken by GetForUpdate reads last until Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	// Commit fails with a TransientConflictError when PostgreSQL aborts the transaction.
	Commit(ctx context.Context) error
	// Rollback after Commit returns an error that deferred rollbacks ignore.
	Rollback(ctx context.Context) error

	PartyRepository() PartyRepository
	ExpeditionRepository() ExpeditionRepository
	OfferRepository() OfferRepository
	CourseRepository() CourseRepository
	BookingRepository() BookingRepository
	ReviewRepository() ReviewRepository
}
