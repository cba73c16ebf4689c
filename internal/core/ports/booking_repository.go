package ports

import (
	"context"

	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"
)

// BookingRepository defines the persistence contract for bookings.
type BookingRepository interface {
	Add(ctx context.Context, aggregate *booking.Booking) error

	// Update persists the status of an existing booking.
	Update(ctx context.Context, aggregate *booking.Booking) error

	Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error)

	// ListByCourse returns every booking of a course, cancelled ones included, oldest first.
	// Called after the course lock is held, it is the consistent input of the capacity ledger.
	ListByCourse(ctx context.Context, courseID kernel.UUID) ([]*booking.Booking, error)
}
