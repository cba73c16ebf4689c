// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models built from one database snapshot and never lock rows.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSearchExpeditionsQueryIsNotConstructed = errors.New(
	"SearchExpeditionsQuery must be created via NewSearchExpeditionsQuery constructor",
)

// SearchExpeditionsQuery is a carrier looking for open expeditions to bid on.
//
// Example:
//
//	ceiling := decimal.NewFromInt(500)
//	query, err := NewSearchExpeditionsQuery(services.ExpeditionCriteria{
//	    Origin:    "paris",
//	    MaxWeight: &ceiling,
//	})
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type SearchExpeditionsQuery struct {
	criteria services.ExpeditionCriteria
	guard    guard.ConstructorGuard
}

// NewSearchExpeditionsQuery trims the search terms, applies the default page size and
// rejects negative bounds.
func NewSearchExpeditionsQuery(criteria services.ExpeditionCriteria) (SearchExpeditionsQuery, error) {
	criteria, err := normalizeExpeditionCriteria(criteria)
	if err != nil {
		return SearchExpeditionsQuery{}, err
	}
	return SearchExpeditionsQuery{criteria: criteria, guard: guard.NewConstructorGuard()}, nil
}

func (q SearchExpeditionsQuery) Validate() error {
	return q.guard.Validate(ErrSearchExpeditionsQueryIsNotConstructed)
}

func (q SearchExpeditionsQuery) Criteria() services.ExpeditionCriteria {
	return q.criteria
}

// ExpeditionView is an expedition as listed to carriers.
type ExpeditionView struct {
	ID             kernel.UUID
	SenderID       kernel.UUID
	Origin         kernel.Place
	Destination    kernel.Place
	Departure      time.Time
	Weight         decimal.Decimal
	Volume         decimal.Decimal
	Budget         *decimal.Decimal
	EstimatedPrice *decimal.Decimal
	Urgency        expedition.Urgency
	Fragile        bool
	HeavyVehicle   bool
	Status         expedition.Status
}

func newExpeditionView(e *expedition.Expedition) ExpeditionView {
	d := e.Details()
	return ExpeditionView{
		ID:             e.ID(),
		SenderID:       e.SenderID(),
		Origin:         d.Origin,
		Destination:    d.Destination,
		Departure:      d.Departure,
		Weight:         d.Weight,
		Volume:         d.Volume,
		Budget:         d.Budget,
		EstimatedPrice: e.EstimatedPrice(),
		Urgency:        d.Urgency,
		Fragile:        d.Fragile,
		HeavyVehicle:   d.HeavyVehicle,
		Status:         e.Status(),
	}
}

// SearchExpeditionsQueryResponse is one page of matches. Total counts every match
// before paging.
type SearchExpeditionsQueryResponse struct {
	Items []ExpeditionView
	Total int
}
