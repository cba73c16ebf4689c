package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// DefaultRecentReviews is how many of the latest reviews a rating lookup returns.
const DefaultRecentReviews = 10

var ErrGetPartyRatingQueryIsNotConstructed = errors.New(
	"GetPartyRatingQuery must be created via NewGetPartyRatingQuery constructor",
)

// GetPartyRatingQuery reads a party's public reputation. Anyone may run it.
type GetPartyRatingQuery struct {
	partyID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetPartyRatingQuery(partyID kernel.UUID) (GetPartyRatingQuery, error) {
	if err := partyID.Validate(); err != nil {
		return GetPartyRatingQuery{}, err
	}
	return GetPartyRatingQuery{partyID: partyID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPartyRatingQuery) Validate() error {
	return q.guard.Validate(ErrGetPartyRatingQueryIsNotConstructed)
}

func (q GetPartyRatingQuery) PartyID() kernel.UUID {
	return q.partyID
}

type ReviewView struct {
	ID         kernel.UUID
	ReviewerID kernel.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// GetPartyRatingQueryResponse carries the stored aggregate and the latest reviews,
// newest first.
type GetPartyRatingQueryResponse struct {
	PartyID       kernel.UUID
	Name          string
	Role          kernel.Role
	AverageRating decimal.Decimal
	ReviewCount   int
	Recent        []ReviewView
}
