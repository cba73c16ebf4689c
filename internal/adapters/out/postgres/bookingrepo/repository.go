package bookingrepo

import (
	"context"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Add(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgsql.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormBookingRepository) Update(ctx context.Context, aggregate *booking.Booking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&BookingDTO{}).Where("id = ?", dto.ID).
		Select("status").Updates(&dto)
	if result.Error != nil {
		return pgsql.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pgsql.NotFound(gorm.ErrRecordNotFound, "booking", aggregate.ID())
	}
	return nil
}

func (r *GormBookingRepository) Get(ctx context.Context, id kernel.UUID) (*booking.Booking, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BookingDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgsql.NotFound(err, "booking", id)
	}
	return toDomain(dto)
}

func (r *GormBookingRepository) ListByCourse(ctx context.Context, courseID kernel.UUID) ([]*booking.Booking, error) {
	var dtos []BookingDTO
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgsql.Translate(err)
	}

	bookings := make([]*booking.Booking, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
