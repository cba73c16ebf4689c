package services

import (
	"freight/internal/core/domain/model/booking"
	"freight/internal/core/domain/model/course"
	"freight/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LedgerSnapshot is the derived capacity accounting of one course at one instant.
// AvailableVolume and MaxVolume are nil when the course declares no volume limit.
type LedgerSnapshot struct {
	MaxWeight       decimal.Decimal
	CommittedWeight decimal.Decimal
	AvailableWeight decimal.Decimal
	MaxVolume       *decimal.Decimal
	CommittedVolume decimal.Decimal
	AvailableVolume *decimal.Decimal
	OccupancyRate   decimal.Decimal
	RealizedRevenue decimal.Decimal
	ActiveBookings  int
}

// OccupancyPercent is the occupancy rate rounded for display.
func (s LedgerSnapshot) OccupancyPercent() int64 {
	return s.OccupancyRate.Round(0).IntPart()
}

// CapacityLedger derives committed and available capacity of a course from its bookings.
// Nothing here is stored: every figure is recomputed from the booking set handed in,
// which the caller loads inside the transaction that holds the course lock.
//
// Cancelled bookings never count, on any path.
type CapacityLedger struct{}

func NewCapacityLedger() CapacityLedger {
	return CapacityLedger{}
}

// CommittedWeight sums the weight of bookings that are not cancelled.
func (CapacityLedger) CommittedWeight(bookings []*booking.Booking) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bookings {
		if b.CountsTowardsCapacity() {
			sum = sum.Add(b.Weight())
		}
	}
	return sum
}

// CommittedVolume sums the declared volume of bookings that are not cancelled.
func (CapacityLedger) CommittedVolume(bookings []*booking.Booking) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bookings {
		if b.CountsTowardsCapacity() {
			sum = sum.Add(b.VolumeOrZero())
		}
	}
	return sum
}

// AvailableSpace is max weight minus committed weight.
func (l CapacityLedger) AvailableSpace(c *course.Course, bookings []*booking.Booking) decimal.Decimal {
	return c.MaxWeight().Sub(l.CommittedWeight(bookings))
}

// OccupancyRate is committed weight as an unrounded percentage of max weight.
func (l CapacityLedger) OccupancyRate(c *course.Course, bookings []*booking.Booking) decimal.Decimal {
	return occupancy(l.CommittedWeight(bookings), c.MaxWeight())
}

// RealizedRevenue sums the total price of delivered bookings.
func (CapacityLedger) RealizedRevenue(bookings []*booking.Booking) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bookings {
		if b.Status() == booking.Delivered {
			sum = sum.Add(b.TotalPrice())
		}
	}
	return sum
}

// Snapshot computes every ledger figure from the same booking set.
func (l CapacityLedger) Snapshot(c *course.Course, bookings []*booking.Booking) LedgerSnapshot {
	active := 0
	for _, b := range bookings {
		if b.CountsTowardsCapacity() {
			active++
		}
	}
	return NewLedgerSnapshot(c.MaxWeight(), c.MaxVolume(),
		l.CommittedWeight(bookings), l.CommittedVolume(bookings), l.RealizedRevenue(bookings), active)
}

// NewLedgerSnapshot builds a snapshot from pre-aggregated sums, as read models do.
func NewLedgerSnapshot(
	maxWeight decimal.Decimal,
	maxVolume *decimal.Decimal,
	committedWeight, committedVolume, revenue decimal.Decimal,
	activeBookings int,
) LedgerSnapshot {
	s := LedgerSnapshot{
		MaxWeight:       maxWeight,
		CommittedWeight: committedWeight,
		AvailableWeight: maxWeight.Sub(committedWeight),
		MaxVolume:       maxVolume,
		CommittedVolume: committedVolume,
		OccupancyRate:   occupancy(committedWeight, maxWeight),
		RealizedRevenue: revenue,
		ActiveBookings:  activeBookings,
	}
	if maxVolume != nil {
		available := maxVolume.Sub(committedVolume)
		s.AvailableVolume = &available
	}
	return s
}

// TryReserve checks that weight (and volume, when both the request and the course declare
// one) still fits on the course given the bookings already on it, and fires Fill when the
// reservation exhausts a dimension.
//
// Parameters:
//   - c: the course, loaded under lock
//   - bookings: every booking of the course, loaded in the same transaction
//   - weight, volume: the requested reservation; volume may be nil
//
// Returns:
//   - CapacityExceededError when committed + requested would exceed the maximum
//   - IllegalTransitionError when the course no longer takes bookings
func (l CapacityLedger) TryReserve(
	c *course.Course,
	bookings []*booking.Booking,
	weight decimal.Decimal,
	volume *decimal.Decimal,
) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.Status().AcceptsBookings() {
		return errs.NewIllegalTransitionError("course", c.Status().String(), "Reserve")
	}

	available := l.AvailableSpace(c, bookings)
	if c.Status() == course.Full || weight.GreaterThan(available) {
		return errs.NewCapacityExceededError("kg", weight.String(), decimal.Max(available, decimal.Zero).String())
	}

	if maxVolume := c.MaxVolume(); maxVolume != nil && volume != nil {
		availableVolume := maxVolume.Sub(l.CommittedVolume(bookings))
		if volume.GreaterThan(availableVolume) {
			return errs.NewCapacityExceededError("m³", volume.String(), decimal.Max(availableVolume, decimal.Zero).String())
		}
	}

	requestedVolume := decimal.Zero
	if volume != nil {
		requestedVolume = *volume
	}
	if exhausted(c, l.CommittedWeight(bookings).Add(weight), l.CommittedVolume(bookings).Add(requestedVolume)) {
		return c.Fill()
	}
	return nil
}

// Exhausted reports whether bookings leave no weight, or no room within a declared
// volume limit, on c. A course in that state must be Full.
func (l CapacityLedger) Exhausted(c *course.Course, bookings []*booking.Booking) bool {
	return exhausted(c, l.CommittedWeight(bookings), l.CommittedVolume(bookings))
}

func exhausted(c *course.Course, committedWeight, committedVolume decimal.Decimal) bool {
	if !c.MaxWeight().GreaterThan(committedWeight) {
		return true
	}
	maxVolume := c.MaxVolume()
	return maxVolume != nil && !maxVolume.GreaterThan(committedVolume)
}

// Release reopens a Full course once the remaining bookings leave room on every
// dimension. Call it with the bookings as they are after the cancellation.
func (l CapacityLedger) Release(c *course.Course, remaining []*booking.Booking) error {
	if c.Status() != course.Full || l.Exhausted(c, remaining) {
		return nil
	}
	return c.Reopen()
}

// VerifyWithinCapacity re-checks that committed weight does not exceed the maximum.
// Confirmation runs it so that a booking is never confirmed on an oversold course.
func (l CapacityLedger) VerifyWithinCapacity(c *course.Course, bookings []*booking.Booking) error {
	committed := l.CommittedWeight(bookings)
	if committed.GreaterThan(c.MaxWeight()) {
		return errs.NewCapacityExceededError("kg", committed.String(), c.MaxWeight().String())
	}
	return nil
}

func occupancy(committed, maxValue decimal.Decimal) decimal.Decimal {
	if !maxValue.IsPositive() {
		return decimal.Zero
	}
	return committed.Mul(hundred).Div(maxValue)
}
