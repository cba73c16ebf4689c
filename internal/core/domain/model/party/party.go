package party

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// RatingPlaces is the precision of the published average rating.
const RatingPlaces = 1

// ErrPartyIsNotConstructed is returned by Validate for a zero-value Party.
var ErrPartyIsNotConstructed = errors.New("Party must be created via NewParty constructor")

// Party is a marketplace participant acting as sender or carrier. The engine keeps
// only what it needs to authorize and to publish the rating aggregate.
type Party struct {
	id            kernel.UUID
	role          kernel.Role
	name          string
	averageRating decimal.Decimal
	reviewCount   int
	guard         guard.ConstructorGuard
}

// NewParty registers a sender or carrier with no reviews yet. The name is trimmed and
// must not be empty.
func NewParty(id kernel.UUID, role kernel.Role, name string) (*Party, error) {
	return RestoreParty(id, role, name, decimal.Zero, 0)
}

// RestoreParty rebuilds a party with its stored rating aggregate.
func RestoreParty(
	id kernel.UUID,
	role kernel.Role,
	name string,
	averageRating decimal.Decimal,
	reviewCount int,
) (*Party, error) {
	var roleErr, nameErr error
	if role != kernel.Sender && role != kernel.Carrier {
		roleErr = errs.NewValueIsOutOfRangeError("role", role, kernel.Sender, kernel.Carrier)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}
	var countErr error
	if reviewCount < 0 {
		countErr = errs.NewValueIsOutOfRangeError("review count", reviewCount, 0, "unbounded")
	}

	if err := errors.Join(id.Validate(), roleErr, nameErr, countErr); err != nil {
		return nil, err
	}

	return &Party{
		id:            id,
		role:          role,
		name:          name,
		averageRating: averageRating,
		reviewCount:   reviewCount,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the party was built by a constructor.
func (p *Party) Validate() error {
	if p == nil {
		return ErrPartyIsNotConstructed
	}
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

// ID returns the party identifier, which is also the subject of its tokens.
func (p *Party) ID() kernel.UUID {
	return p.id
}

// Role is fixed at registration.
func (p *Party) Role() kernel.Role {
	return p.role
}

// Name is the display name shown with ratings.
func (p *Party) Name() string {
	return p.name
}

// AverageRating is the mean of all received ratings rounded to one decimal, zero without reviews.
func (p *Party) AverageRating() decimal.Decimal {
	return p.averageRating
}

// ReviewCount is the number of ratings behind AverageRating.
func (p *Party) ReviewCount() int {
	return p.reviewCount
}

// ApplyRatings replaces the aggregate with one recomputed from the complete rating set.
// Callers pass every rating addressed to the party, never a delta.
func (p *Party) ApplyRatings(ratings []int) {
	p.averageRating = AverageOf(ratings)
	p.reviewCount = len(ratings)
}

// AverageOf returns round(mean(ratings), 1), or zero for an empty set.
func AverageOf(ratings []int) decimal.Decimal {
	if len(ratings) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(r)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(RatingPlaces)
}
