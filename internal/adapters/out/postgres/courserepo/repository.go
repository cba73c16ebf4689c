package courserepo

import (
	"context"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GormCourseRepository struct {
	db *gorm.DB
}

func NewGormCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

func (r *GormCourseRepository) Add(ctx context.Context, aggregate *course.Course) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgsql.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

// Update writes every column, zero values included, so that the active flag and optional limits can be cleared.
func (r *GormCourseRepository) Update(ctx context.Context, aggregate *course.Course) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&CourseDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "carrier_id", "created_at").Updates(&dto)
	if result.Error != nil {
		return pgsql.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pgsql.NotFound(gorm.ErrRecordNotFound, "course", aggregate.ID())
	}
	return nil
}

func (r *GormCourseRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&CourseDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgsql.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pgsql.NotFound(gorm.ErrRecordNotFound, "course", id)
	}
	return nil
}

func (r *GormCourseRepository) Get(ctx context.Context, id kernel.UUID) (*course.Course, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormCourseRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*course.Course, error) {
	return r.get(pgsql.ForUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormCourseRepository) get(db *gorm.DB, id kernel.UUID) (*course.Course, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourseDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgsql.NotFound(err, "course", id)
	}
	return ToDomain(dto)
}
