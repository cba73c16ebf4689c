package courserepo

import (
	"time"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/course"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type CourseDTO struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CarrierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Origin      pgsql.PlaceColumns  `gorm:"embedded;embeddedPrefix:origin_"`
	Destination pgsql.PlaceColumns  `gorm:"embedded;embeddedPrefix:destination_"`
	Stops       pq.StringArray      `gorm:"type:text[]"`
	Departure   time.Time           `gorm:"not null;index"`
	Arrival     *time.Time
	MaxWeight   decimal.Decimal     `gorm:"type:numeric;not null"`
	MaxVolume   decimal.NullDecimal `gorm:"type:numeric"`
	PricePerKg  decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	VehicleType string              `gorm:"type:text"`
	Active      bool                `gorm:"not null"`
	Status      int                 `gorm:"not null;index"`
	CreatedAt   time.Time           `gorm:"not null"`
}

func (CourseDTO) TableName() string {
	return "courses"
}

func fromDomain(c *course.Course) CourseDTO {
	d := c.Details()
	return CourseDTO{
		ID:          c.ID().Bytes(),
		CarrierID:   c.CarrierID().Bytes(),
		Origin:      pgsql.PlaceFromDomain(d.Origin),
		Destination: pgsql.PlaceFromDomain(d.Destination),
		Stops:       pq.StringArray(d.Stops),
		Departure:   d.Departure,
		Arrival:     pgsql.NullTime(d.Arrival),
		MaxWeight:   d.MaxWeight,
		MaxVolume:   pgsql.NullDecimal(d.MaxVolume),
		PricePerKg:  d.PricePerKg,
		VehicleType: d.VehicleType,
		Active:      c.IsActive(),
		Status:      int(c.Status()),
		CreatedAt:   c.CreatedAt(),
	}
}

// ToDomain restores a course from a row.
func ToDomain(dto CourseDTO) (*course.Course, error) {
	id, err := pgsql.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	carrierID, err := pgsql.UUID(dto.CarrierID)
	if err != nil {
		return nil, err
	}
	origin, err := dto.Origin.ToDomain()
	if err != nil {
		return nil, err
	}
	destination, err := dto.Destination.ToDomain()
	if err != nil {
		return nil, err
	}

	return course.RestoreCourse(id, carrierID, course.Details{
		Origin:      origin,
		Destination: destination,
		Stops:       []string(dto.Stops),
		Departure:   dto.Departure,
		Arrival:     pgsql.TimeOrZero(dto.Arrival),
		MaxWeight:   dto.MaxWeight,
		MaxVolume:   pgsql.DecimalPtr(dto.MaxVolume),
		PricePerKg:  dto.PricePerKg,
		VehicleType: dto.VehicleType,
	}, dto.Active, course.Status(dto.Status), dto.CreatedAt)
}
