package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSearchCoursesQueryIsNotConstructed = errors.New(
	"SearchCoursesQuery must be created via NewSearchCoursesQuery constructor",
)

// SearchCoursesQuery is a sender looking for a course with room for a shipment.
type SearchCoursesQuery struct {
	criteria services.CourseCriteria
	guard    guard.ConstructorGuard
}

func NewSearchCoursesQuery(criteria services.CourseCriteria) (SearchCoursesQuery, error) {
	criteria, err := normalizeCourseCriteria(criteria)
	if err != nil {
		return SearchCoursesQuery{}, err
	}
	return SearchCoursesQuery{criteria: criteria, guard: guard.NewConstructorGuard()}, nil
}

func (q SearchCoursesQuery) Validate() error {
	return q.guard.Validate(ErrSearchCoursesQueryIsNotConstructed)
}

func (q SearchCoursesQuery) Criteria() services.CourseCriteria {
	return q.criteria
}

// CourseView is a course as listed to senders, with the capacity left on it.
type CourseView struct {
	ID               kernel.UUID
	CarrierID        kernel.UUID
	Origin           kernel.Place
	Destination      kernel.Place
	Stops            []string
	Departure        time.Time
	Arrival          time.Time
	MaxWeight        decimal.Decimal
	AvailableWeight  decimal.Decimal
	MaxVolume        *decimal.Decimal
	AvailableVolume  *decimal.Decimal
	PricePerKg       decimal.Decimal
	VehicleType      string
	OccupancyPercent int64
	Status           course.Status
}

func newCourseView(c services.CourseCandidate) CourseView {
	d := c.Course.Details()
	return CourseView{
		ID:               c.Course.ID(),
		CarrierID:        c.Course.CarrierID(),
		Origin:           d.Origin,
		Destination:      d.Destination,
		Stops:            d.Stops,
		Departure:        d.Departure,
		Arrival:          d.Arrival,
		MaxWeight:        d.MaxWeight,
		AvailableWeight:  c.Ledger.AvailableWeight,
		MaxVolume:        d.MaxVolume,
		AvailableVolume:  c.Ledger.AvailableVolume,
		PricePerKg:       d.PricePerKg,
		VehicleType:      d.VehicleType,
		OccupancyPercent: c.Ledger.OccupancyPercent(),
		Status:           c.Course.Status(),
	}
}

type SearchCoursesQueryResponse struct {
	Items []CourseView
	Total int
}
