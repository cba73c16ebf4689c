package offerrepo

import (
	"time"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/offer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ExpeditionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CarrierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Message      string          `gorm:"type:text"`
	Status       int             `gorm:"not null;index"`
	CreatedAt    time.Time       `gorm:"not null"`
	ExpiresAt    *time.Time      `gorm:"index"`
}

func (OfferDTO) TableName() string {
	return "offers"
}

func fromDomain(o *offer.Offer) OfferDTO {
	return OfferDTO{
		ID:           o.ID().Bytes(),
		ExpeditionID: o.ExpeditionID().Bytes(),
		CarrierID:    o.CarrierID().Bytes(),
		Price:        o.Price(),
		Message:      o.Message(),
		Status:       int(o.Status()),
		CreatedAt:    o.CreatedAt(),
		ExpiresAt:    pgsql.NullTime(o.ExpiresAt()),
	}
}

func toDomain(dto OfferDTO) (*offer.Offer, error) {
	id, err := pgsql.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	expeditionID, err := pgsql.UUID(dto.ExpeditionID)
	if err != nil {
		return nil, err
	}
	carrierID, err := pgsql.UUID(dto.CarrierID)
	if err != nil {
		return nil, err
	}
	return offer.RestoreOffer(id, expeditionID, carrierID, dto.Price, dto.Message,
		offer.Status(dto.Status), dto.CreatedAt, pgsql.TimeOrZero(dto.ExpiresAt))
}

func toDomainList(dtos []OfferDTO) ([]*offer.Offer, error) {
	offers := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, nil
}
