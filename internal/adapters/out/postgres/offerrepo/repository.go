package offerrepo

import (
	"context"
	"time"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/offer"

	"gorm.io/gorm"
)

type GormOfferRepository struct {
	db *gorm.DB
}

func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

func (r *GormOfferRepository) Add(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgsql.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormOfferRepository) Update(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OfferDTO{}).Where("id = ?", dto.ID).
		Select("status", "message").Updates(&dto)
	if result.Error != nil {
		return pgsql.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pgsql.NotFound(gorm.ErrRecordNotFound, "offer", aggregate.ID())
	}
	return nil
}

func (r *GormOfferRepository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OfferDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgsql.NotFound(err, "offer", id)
	}
	return toDomain(dto)
}

func (r *GormOfferRepository) ListByExpedition(ctx context.Context, expeditionID kernel.UUID) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	err := r.db.WithContext(ctx).
		Where("expedition_id = ?", expeditionID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgsql.Translate(err)
	}
	return toDomainList(dtos)
}

func (r *GormOfferRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*offer.Offer, error) {
	var dtos []OfferDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", int(offer.Pending), now).
		Order("expires_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgsql.Translate(err)
	}
	return toDomainList(dtos)
}
