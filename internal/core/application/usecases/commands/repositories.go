// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, persistence
// and, once committed, best-effort notification.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PartyRepoFactory provides access to the party repository within a transaction.
	PartyRepoFactory interface {
		PartyRepository() ports.PartyRepository
	}

	// ExpeditionRepoFactory provides access to the expedition repository within a transaction.
	ExpeditionRepoFactory interface {
		ExpeditionRepository() ports.ExpeditionRepository
	}

	// OfferRepoFactory provides access to the offer repository within a transaction.
	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	// CourseRepoFactory provides access to the course repository within a transaction.
	CourseRepoFactory interface {
		CourseRepository() ports.CourseRepository
	}

	// BookingRepoFactory provides access to the booking repository within a transaction.
	BookingRepoFactory interface {
		BookingRepository() ports.BookingRepository
	}

	// ReviewRepoFactory provides access to the review repository within a transaction.
	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// UoW manages one transaction across every aggregate of the marketplace.
	// The aggregate root a command mutates is locked first; its children are
	// read and written under that lock.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   c, err := uow.CourseRepository().GetForUpdate(ctx, courseID)
	//   bookings, err := uow.BookingRepository().ListByCourse(ctx, courseID)
	//   // ... reserve capacity, add the booking
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		PartyRepoFactory
		ExpeditionRepoFactory
		OfferRepoFactory
		CourseRepoFactory
		BookingRepoFactory
		ReviewRepoFactory
	}

	// UoWFactory creates new unit of work instances, one per attempt of a command.
	UoWFactory interface {
		Create() UoW
	}
)

// UoWFactoryFunc adapts a plain constructor to UoWFactory.
type UoWFactoryFunc func() UoW

func (f UoWFactoryFunc) Create() UoW {
	return f()
}
