package reviewrepo

import (
	"time"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/review"

	"github.com/google/uuid"
)

type ReviewDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_pair,priority:1"`
	ReviewedID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_pair,priority:2;index"`
	Rating     int       `gorm:"type:smallint;not null;check:rating BETWEEN 1 AND 5"`
	Comment    string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

func fromDomain(r *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:         r.ID().Bytes(),
		ReviewerID: r.ReviewerID().Bytes(),
		ReviewedID: r.ReviewedID().Bytes(),
		Rating:     r.Rating(),
		Comment:    r.Comment(),
		CreatedAt:  r.CreatedAt(),
	}
}

func toDomain(dto ReviewDTO) (*review.Review, error) {
	id, err := pgsql.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	reviewerID, err := pgsql.UUID(dto.ReviewerID)
	if err != nil {
		return nil, err
	}
	reviewedID, err := pgsql.UUID(dto.ReviewedID)
	if err != nil {
		return nil, err
	}
	return review.NewReview(id, reviewerID, reviewedID, dto.Rating, dto.Comment, dto.CreatedAt)
}
