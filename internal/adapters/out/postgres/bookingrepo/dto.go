package bookingrepo

import (
	"time"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingDTO struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CourseID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	ClientID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	Weight     decimal.Decimal     `gorm:"type:numeric;not null"`
	Volume     decimal.NullDecimal `gorm:"type:numeric"`
	Packages   int                 `gorm:"not null"`
	TotalPrice decimal.Decimal     `gorm:"type:numeric(12,2);not null"`
	Status     int                 `gorm:"not null;index"`
	CreatedAt  time.Time           `gorm:"not null"`
}

func (BookingDTO) TableName() string {
	return "bookings"
}

func fromDomain(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:         b.ID().Bytes(),
		CourseID:   b.CourseID().Bytes(),
		ClientID:   b.ClientID().Bytes(),
		Weight:     b.Weight(),
		Volume:     pgsql.NullDecimal(b.Volume()),
		Packages:   b.Packages(),
		TotalPrice: b.TotalPrice(),
		Status:     int(b.Status()),
		CreatedAt:  b.CreatedAt(),
	}
}

func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := pgsql.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	courseID, err := pgsql.UUID(dto.CourseID)
	if err != nil {
		return nil, err
	}
	clientID, err := pgsql.UUID(dto.ClientID)
	if err != nil {
		return nil, err
	}
	return booking.RestoreBooking(id, courseID, clientID, dto.Weight, pgsql.DecimalPtr(dto.Volume),
		dto.Packages, dto.TotalPrice, booking.Status(dto.Status), dto.CreatedAt)
}
