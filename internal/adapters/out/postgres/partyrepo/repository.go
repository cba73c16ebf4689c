package partyrepo

import (
	"context"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/party"

	"gorm.io/gorm"
)

type GormPartyRepository struct {
	db *gorm.DB
}

func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

func (r *GormPartyRepository) Add(ctx context.Context, aggregate *party.Party) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return pgsql.Translate(r.db.WithContext(ctx).Create(&dto).Error)
}

func (r *GormPartyRepository) Update(ctx context.Context, aggregate *party.Party) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PartyDTO{}).Where("id = ?", dto.ID).
		Select("name", "average_rating", "review_count").Updates(&dto)
	if result.Error != nil {
		return pgsql.Translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return pgsql.NotFound(gorm.ErrRecordNotFound, "party", aggregate.ID())
	}
	return nil
}

func (r *GormPartyRepository) Get(ctx context.Context, id kernel.UUID) (*party.Party, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormPartyRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*party.Party, error) {
	return r.get(pgsql.ForUpdate(r.db.WithContext(ctx)), id)
}

func (r *GormPartyRepository) get(db *gorm.DB, id kernel.UUID) (*party.Party, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartyDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgsql.NotFound(err, "party", id)
	}
	return toDomain(dto)
}
