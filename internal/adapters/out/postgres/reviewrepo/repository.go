package reviewrepo

import (
	"context"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/review"

	"gorm.io/gorm"
)

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Add relies on the idx_reviews_pair unique index for the final word on duplicates.
func (r *GormReviewRepository) Add(ctx context.Context, rv *review.Review) error {
	if err := rv.Validate(); err != nil {
		return err
	}

	dto := fromDomain(rv)
	return pgsql.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormReviewRepository) Exists(ctx context.Context, reviewerID, reviewedID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReviewDTO{}).
		Where("reviewer_id = ? AND reviewed_id = ?", reviewerID.Bytes(), reviewedID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, pgsql.Translate(err)
	}
	return count > 0, nil
}

func (r *GormReviewRepository) ListByReviewed(ctx context.Context, reviewedID kernel.UUID) ([]*review.Review, error) {
	var dtos []ReviewDTO
	err := r.db.WithContext(ctx).
		Where("reviewed_id = ?", reviewedID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgsql.Translate(err)
	}

	reviews := make([]*review.Review, 0, len(dtos))
	for _, dto := range dtos {
		rv, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, nil
}
