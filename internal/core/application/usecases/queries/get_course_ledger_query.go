package queries

import (
	"errors"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var ErrGetCourseLedgerQueryIsNotConstructed = errors.New(
	"GetCourseLedgerQuery must be created via NewGetCourseLedgerQuery constructor",
)

// GetCourseLedgerQuery asks for the capacity accounting of a course. Only the course's
// carrier may read it: it includes realized revenue.
type GetCourseLedgerQuery struct {
	actor    kernel.Actor
	courseID kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetCourseLedgerQuery(actor kernel.Actor, courseID kernel.UUID) (GetCourseLedgerQuery, error) {
	if err := courseID.Validate(); err != nil {
		return GetCourseLedgerQuery{}, err
	}
	return GetCourseLedgerQuery{actor: actor, courseID: courseID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCourseLedgerQuery) Validate() error {
	return q.guard.Validate(ErrGetCourseLedgerQueryIsNotConstructed)
}

func (q GetCourseLedgerQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetCourseLedgerQuery) CourseID() kernel.UUID {
	return q.courseID
}

type GetCourseLedgerQueryResponse struct {
	CourseID         kernel.UUID
	Status           course.Status
	Ledger           services.LedgerSnapshot
	OccupancyPercent int64
}
