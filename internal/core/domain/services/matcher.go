package services

import (
	"cmp"
	"slices"
	"time"

	"freight/internal/core/domain/model/course"
	"freight/internal/core/domain/model/expedition"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
	// BrowseCap bounds the result set of a search that carries no filter at all.
	BrowseCap = 20
)

// Page is an offset/limit window over an ordered result set.
type Page struct {
	Offset int
	Limit  int
}

// NewPage applies the default page size and clamps the limit to MaxPageSize.
func NewPage(offset, limit int) (Page, error) {
	if offset < 0 {
		return Page{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	if limit < 0 {
		return Page{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxPageSize)
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	return Page{Offset: offset, Limit: min(limit, MaxPageSize)}, nil
}

func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	p.Limit = min(p.Limit, MaxPageSize)
	p.Offset = max(p.Offset, 0)
	return p
}

// Slice returns the offset and limit selecting p from an ordered result set. A browse
// never reaches past BrowseCap, so a page beyond it has a zero limit.
func (p Page) Slice(browse bool) (offset, limit int) {
	p = p.normalized()
	limit = p.Limit
	if browse {
		limit = max(min(limit, BrowseCap-p.Offset), 0)
	}
	return p.Offset, limit
}

// CapTotal bounds the number of matches reported for a browse.
func CapTotal(total int, browse bool) int {
	if browse {
		return min(total, BrowseCap)
	}
	return total
}

// ExpeditionCriteria is what a carrier searches expeditions by.
type ExpeditionCriteria struct {
	Origin      string
	Destination string
	Day         *time.Time
	MaxWeight   *decimal.Decimal
	MaxVolume   *decimal.Decimal
	Budget      *decimal.Decimal
	Page        Page
}

// IsBrowse reports whether no filter was given.
func (c ExpeditionCriteria) IsBrowse() bool {
	return c.Origin == "" && c.Destination == "" && c.Day == nil &&
		c.MaxWeight == nil && c.MaxVolume == nil && c.Budget == nil
}

// CourseCriteria is what a sender searches courses by. Weight and Volume are floors:
// the course must still have that much room.
type CourseCriteria struct {
	Origin      string
	Destination string
	Day         *time.Time
	Weight      *decimal.Decimal
	Volume      *decimal.Decimal
	Budget      *decimal.Decimal
	Page        Page
}

func (c CourseCriteria) IsBrowse() bool {
	return c.Origin == "" && c.Destination == "" && c.Day == nil &&
		c.Weight == nil && c.Volume == nil && c.Budget == nil
}

// CourseCandidate pairs a course with its ledger, computed from the same snapshot.
type CourseCandidate struct {
	Course *course.Course
	Ledger LedgerSnapshot
}

// Result is one page of matches plus the number of matches before paging.
type Result[T any] struct {
	Items []T
	Total int
}

// Matcher filters, orders and pages search candidates in memory. The search queries
// push the same predicates and ordering into SQL; Matcher defines what they must return.
type Matcher struct{}

func NewMatcher() Matcher {
	return Matcher{}
}

// MatchExpeditions returns open, active expeditions satisfying criteria, ordered by
// urgency (descending), departure, then id.
func (Matcher) MatchExpeditions(
	now time.Time,
	criteria ExpeditionCriteria,
	candidates []*expedition.Expedition,
) Result[*expedition.Expedition] {
	from, to := departureWindow(now, criteria.Day)

	matched := make([]*expedition.Expedition, 0, len(candidates))
	for _, e := range candidates {
		if !e.Status().IsOpen() || !e.IsActive() {
			continue
		}
		if !inWindow(e.Departure(), from, to) {
			continue
		}
		if !e.Origin().Matches(criteria.Origin) || !e.Destination().Matches(criteria.Destination) {
			continue
		}
		if criteria.MaxWeight != nil && e.Weight().GreaterThan(*criteria.MaxWeight) {
			continue
		}
		if criteria.MaxVolume != nil && e.Volume().GreaterThan(*criteria.MaxVolume) {
			continue
		}
		if criteria.Budget != nil && e.Budget() != nil && e.Budget().GreaterThan(*criteria.Budget) {
			continue
		}
		matched = append(matched, e)
	}

	slices.SortFunc(matched, func(a, b *expedition.Expedition) int {
		if c := cmp.Compare(b.Urgency(), a.Urgency()); c != 0 {
			return c
		}
		if c := a.Departure().Compare(b.Departure()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})

	return paginate(matched, criteria.Page, criteria.IsBrowse())
}

// MatchCourses returns available, active courses with enough room, ordered by
// departure, price per kg, then id. A destination term also matches intermediate stops.
func (Matcher) MatchCourses(
	now time.Time,
	criteria CourseCriteria,
	candidates []CourseCandidate,
) Result[CourseCandidate] {
	from, to := departureWindow(now, criteria.Day)

	var maxPricePerKg *decimal.Decimal
	if criteria.Budget != nil && criteria.Weight != nil && criteria.Weight.IsPositive() {
		p := criteria.Budget.Div(*criteria.Weight)
		maxPricePerKg = &p
	}

	matched := make([]CourseCandidate, 0, len(candidates))
	for _, cand := range candidates {
		c := cand.Course
		if c.Status() != course.Available || !c.IsActive() {
			continue
		}
		if !inWindow(c.Departure(), from, to) {
			continue
		}
		if !c.Origin().Matches(criteria.Origin) || !c.ServesDestination(criteria.Destination) {
			continue
		}
		if criteria.Weight != nil && cand.Ledger.AvailableWeight.LessThan(*criteria.Weight) {
			continue
		}
		if criteria.Volume != nil && cand.Ledger.AvailableVolume != nil &&
			cand.Ledger.AvailableVolume.LessThan(*criteria.Volume) {
			continue
		}
		if maxPricePerKg != nil && c.PricePerKg().GreaterThan(*maxPricePerKg) {
			continue
		}
		matched = append(matched, cand)
	}

	slices.SortFunc(matched, func(a, b CourseCandidate) int {
		if c := a.Course.Departure().Compare(b.Course.Departure()); c != 0 {
			return c
		}
		if c := a.Course.PricePerKg().Cmp(b.Course.PricePerKg()); c != 0 {
			return c
		}
		return compareIDs(a.Course.ID(), b.Course.ID())
	})

	return paginate(matched, criteria.Page, criteria.IsBrowse())
}

// DepartureWindow returns [from, to) for a search: the given calendar day, or from the
// start of today onwards when to is zero.
func DepartureWindow(now time.Time, day *time.Time) (time.Time, time.Time) {
	return departureWindow(now, day)
}

func departureWindow(now time.Time, day *time.Time) (time.Time, time.Time) {
	if day != nil {
		start := startOfDay(*day)
		return start, start.AddDate(0, 0, 1)
	}
	return startOfDay(now), time.Time{}
}

func startOfDay(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, t.Location())
}

func inWindow(t, from, to time.Time) bool {
	if t.Before(from) {
		return false
	}
	return to.IsZero() || t.Before(to)
}

func compareIDs(a, b kernel.UUID) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

func paginate[T any](items []T, page Page, browse bool) Result[T] {
	total := CapTotal(len(items), browse)
	offset, limit := page.Slice(browse)
	if offset >= total {
		return Result[T]{Items: []T{}, Total: total}
	}
	end := min(offset+limit, total)
	return Result[T]{Items: items[offset:end], Total: total}
}
