package expeditionrepo

import (
	"context"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type GormExpeditionRepository struct {
	db *gorm.DB
}

func NewGormExpeditionRepository(db *gorm.DB) *GormExpeditionRepository {
	return &GormExpeditionRepository{db: db}
}

func (r *GormExpeditionRepository) Add(ctx context.Context, aggregate *expedition.Expedition) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgsql.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

// Update writes every column, zero values included, so that flags can be cleared.
func (r *GormExpeditionRepository) Update(ctx context.Context, aggregate *expedition.Expedition) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ExpeditionDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id", "sender_id", "created_at").Updates(&dto)
	if result.Error != nil {
		return pgsql.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pgsql.NotFound(gorm.ErrRecordNotFound, "expedition", aggregate.ID())
	}
	return nil
}

func (r *GormExpeditionRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ExpeditionDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgsql.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pgsql.NotFound(gorm.ErrRecordNotFound, "expedition", id)
	}
	return nil
}

func (r *GormExpeditionRepository) Get(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormExpeditionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*expedition.Expedition, error) {
	return r.get(pgsql.ForUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormExpeditionRepository) get(db *gorm.DB, id kernel.UUID) (*expedition.Expedition, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ExpeditionDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgsql.NotFound(err, "expedition", id)
	}
	return ToDomain(dto)
}
