package ports

import (
	"context"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"
)

// CourseRepository defines the persistence contract for course aggregates.
type CourseRepository interface {
	// Add persists a new course. The carrier must exist.
	Add(ctx context.Context, aggregate *course.Course) error

	// Update persists changes to an existing course.
	Update(ctx context.Context, aggregate *course.Course) error

	// Delete removes the course together with its bookings.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a course without locking it.
	Get(ctx context.Context, id kernel.UUID) (*course.Course, error)

	// GetForUpdate retrieves a course and locks its row until the transaction ends.
	// Every read-then-write of the capacity ledger holds this lock.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*course.Course, error)
}
