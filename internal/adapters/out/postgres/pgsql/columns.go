package pgsql

import (
	"time"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlaceColumns is the embedded column pair of a kernel.Place.
type PlaceColumns struct {
	Address string `gorm:"type:text"`
	City    string `gorm:"type:text;not null"`
}

func PlaceFromDomain(p kernel.Place) PlaceColumns {
	return PlaceColumns{Address: p.Address(), City: p.City()}
}

func (c PlaceColumns) ToDomain() (kernel.Place, error) {
	return kernel.NewPlace(c.Address, c.City)
}

// NullDecimal converts an optional domain quantity into a nullable column.
func NullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

// DecimalPtr converts a nullable column back into an optional quantity.
func DecimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

// NullTime maps a zero time to NULL.
func NullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func TimeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// UUID converts a stored identifier back into the domain type.
func UUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// ForUpdate adds a row lock held until the surrounding transaction ends.
func ForUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
