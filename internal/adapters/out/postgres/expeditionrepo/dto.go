package expeditionrepo

import (
	"time"

	"freight/internal/adapters/out/postgres/pgsql"
	"freight/internal/core/domain/model/expedition"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpeditionDTO struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	SenderID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	Origin         pgsql.PlaceColumns  `gorm:"embedded;embeddedPrefix:origin_"`
	Destination    pgsql.PlaceColumns  `gorm:"embedded;embeddedPrefix:destination_"`
	Departure      time.Time           `gorm:"not null;index"`
	Weight         decimal.Decimal     `gorm:"type:numeric;not null"`
	Volume         decimal.Decimal     `gorm:"type:numeric;not null"`
	Budget         decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Urgency        int                 `gorm:"not null"`
	Fragile        bool                `gorm:"not null"`
	HeavyVehicle   bool                `gorm:"not null"`
	DistanceKm     decimal.NullDecimal `gorm:"type:numeric"`
	EstimatedPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Active         bool                `gorm:"not null"`
	Status         int                 `gorm:"not null;index"`
	CreatedAt      time.Time           `gorm:"not null"`
}

func (ExpeditionDTO) TableName() string {
	return "expeditions"
}

func fromDomain(e *expedition.Expedition) ExpeditionDTO {
	d := e.Details()
	return ExpeditionDTO{
		ID:             e.ID().Bytes(),
		SenderID:       e.SenderID().Bytes(),
		Origin:         pgsql.PlaceFromDomain(d.Origin),
		Destination:    pgsql.PlaceFromDomain(d.Destination),
		Departure:      d.Departure,
		Weight:         d.Weight,
		Volume:         d.Volume,
		Budget:         pgsql.NullDecimal(d.Budget),
		Urgency:        int(d.Urgency),
		Fragile:        d.Fragile,
		HeavyVehicle:   d.HeavyVehicle,
		DistanceKm:     pgsql.NullDecimal(d.DistanceKm),
		EstimatedPrice: pgsql.NullDecimal(e.EstimatedPrice()),
		Active:         e.IsActive(),
		Status:         int(e.Status()),
		CreatedAt:      e.CreatedAt(),
	}
}

// ToDomain restores an expedition from a row. It is exported for read models that
// select expedition rows themselves.
func ToDomain(dto ExpeditionDTO) (*expedition.Expedition, error) {
	id, err := pgsql.UUID(dto.ID)
	if err != nil {
		return nil, err
	}
	senderID, err := pgsql.UUID(dto.SenderID)
	if err != nil {
		return nil, err
	}
	origin, err := dto.Origin.ToDomain()
	if err != nil {
		return nil, err
	}
	destination, err := dto.Destination.ToDomain()
	if err != nil {
		return nil, err
	}

	return expedition.RestoreExpedition(id, senderID, expedition.Details{
		Origin:       origin,
		Destination:  destination,
		Departure:    dto.Departure,
		Weight:       dto.Weight,
		Volume:       dto.Volume,
		Budget:       pgsql.DecimalPtr(dto.Budget),
		Urgency:      expedition.Urgency(dto.Urgency),
		Fragile:      dto.Fragile,
		HeavyVehicle: dto.HeavyVehicle,
		DistanceKm:   pgsql.DecimalPtr(dto.DistanceKm),
	}, pgsql.DecimalPtr(dto.EstimatedPrice), dto.Active, expedition.Status(dto.Status), dto.CreatedAt)
}
