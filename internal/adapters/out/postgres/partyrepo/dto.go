package partyrepo

import (
	"time"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/party"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartyDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Role          int             `gorm:"not null"`
	Name          string          `gorm:"type:text;not null"`
	AverageRating decimal.Decimal `gorm:"type:numeric(2,1);not null;default:0"`
	ReviewCount   int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
}

func (PartyDTO) TableName() string {
	return "parties"
}

func fromDomain(p *party.Party) PartyDTO {
	return PartyDTO{
		ID:            p.ID().Bytes(),
		Role:          int(p.Role()),
		Name:          p.Name(),
		AverageRating: p.AverageRating(),
		ReviewCount:   p.ReviewCount(),
	}
}

func toDomain(dto PartyDTO) (*party.Party, error) {
	id, err := pgsql.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	return party.RestoreParty(id, kernel.Role(dto.Role), dto.Name, dto.AverageRating, dto.ReviewCount)
}
