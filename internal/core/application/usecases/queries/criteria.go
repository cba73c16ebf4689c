package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func normalizeExpeditionCriteria(c services.ExpeditionCriteria) (services.ExpeditionCriteria, error) {
	page, err := services.NewPage(c.Page.Offset, c.Page.Limit)
	if err != nil {
		return c, err
	}
	if err = nonNegative(bound{"maxWeight", c.MaxWeight}, bound{"maxVolume", c.MaxVolume}, bound{"budget", c.Budget}); err != nil {
		return c, err
	}
	c.Origin = strings.TrimSpace(c.Origin)
	c.Destination = strings.TrimSpace(c.Destination)
	c.Page = page
	return c, nil
}

func normalizeCourseCriteria(c services.CourseCriteria) (services.CourseCriteria, error) {
	page, err := services.NewPage(c.Page.Offset, c.Page.Limit)
	if err != nil {
		return c, err
	}
	if err = nonNegative(bound{"weight", c.Weight}, bound{"volume", c.Volume}, bound{"budget", c.Budget}); err != nil {
		return c, err
	}
	c.Origin = strings.TrimSpace(c.Origin)
	c.Destination = strings.TrimSpace(c.Destination)
	c.Page = page
	return c, nil
}

type bound struct {
	name  string
	value *decimal.Decimal
}

func nonNegative(bounds ...bound) error {
	var list []error
	for _, b := range bounds {
		if b.value != nil {
			list = append(list, kernel.RequireNonNegative(b.name, *b.value))
		}
	}
	return errors.Join(list...)
}

// likePattern turns a search term into an ILIKE substring pattern.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// readSnapshot runs fn in a read-only REPEATABLE READ transaction, so that every
// figure a query derives comes from one snapshot.
func readSnapshot(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
}
