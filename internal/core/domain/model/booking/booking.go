package booking

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrBookingIsNotConstructed is returned by Validate for a Booking that did not come
// from NewBooking or RestoreBooking.
var ErrBookingIsNotConstructed = errors.New("Booking must be created via NewBooking constructor")

// Booking is a sender's reservation of space on a course.
// Every booking that is not Cancelled counts against the course capacity.
type Booking struct {
	id         kernel.UUID
	courseID   kernel.UUID
	clientID   kernel.UUID
	weight     decimal.Decimal
	volume     *decimal.Decimal
	packages   int
	totalPrice decimal.Decimal
	status     Status
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// NewBooking creates a Pending booking. The total price is computed by the caller
// from the course's price per kg.
func NewBooking(
	id, courseID, clientID kernel.UUID,
	weight decimal.Decimal,
	volume *decimal.Decimal,
	packages int,
	totalPrice decimal.Decimal,
	createdAt time.Time,
) (*Booking, error) {
	return RestoreBooking(id, courseID, clientID, weight, volume, packages, totalPrice, Pending, createdAt)
}

// RestoreBooking rebuilds a booking in any status, as the postgres adapter reads it.
// NewBooking delegates here with Pending, so both paths enforce the same invariants.
//
// Parameters:
//   - id, courseID, clientID: valid identifiers
//   - weight: positive, in kg
//   - volume: nil when undeclared, otherwise positive, in m³
//   - packages: at least one
//   - totalPrice: non-negative; rounded to cents
//   - status: a known Status
//
// Returns:
//   - *Booking when every field is valid
//   - the joined validation errors otherwise
func RestoreBooking(
	id, courseID, clientID kernel.UUID,
	weight decimal.Decimal,
	volume *decimal.Decimal,
	packages int,
	totalPrice decimal.Decimal,
	status Status,
	createdAt time.Time,
) (*Booking, error) {
	var volumeErr, packagesErr error
	if volume != nil {
		volumeErr = kernel.RequirePositive("volume", *volume)
	}
	if packages < 1 {
		packagesErr = errs.NewValueIsOutOfRangeError("packages", packages, 1, "unbounded")
	}

	if err := errors.Join(
		id.Validate(),
		courseID.Validate(),
		clientID.Validate(),
		kernel.RequirePositive("weight", weight),
		volumeErr,
		packagesErr,
		kernel.RequireNonNegative("total price", totalPrice),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Booking{
		id:         id,
		courseID:   courseID,
		clientID:   clientID,
		weight:     weight,
		volume:     volume,
		packages:   packages,
		totalPrice: kernel.RoundMoney(totalPrice),
		status:     status,
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the booking was built by a constructor rather than declared as a
// zero value. Repositories call it before writing.
//
// Returns:
//   - nil for a constructed booking
//   - ErrBookingIsNotConstructed for nil or a zero value
func (b *Booking) Validate() error {
	if b == nil {
		return ErrBookingIsNotConstructed
	}
	return b.guard.Validate(ErrBookingIsNotConstructed)
}

// ID returns the booking identifier.
func (b *Booking) ID() kernel.UUID {
	return b.id
}

// CourseID returns the course whose capacity the booking consumes.
func (b *Booking) CourseID() kernel.UUID {
	return b.courseID
}

// ClientID returns the sender who booked the space.
func (b *Booking) ClientID() kernel.UUID {
	return b.clientID
}

// Weight is the reserved weight in kg.
func (b *Booking) Weight() decimal.Decimal {
	return b.weight
}

// Volume is nil when the sender did not declare one; it then counts as zero.
func (b *Booking) Volume() *decimal.Decimal {
	return b.volume
}

// VolumeOrZero returns the declared volume, or zero when none was declared. The
// capacity ledger sums it for courses that carry a volume limit.
func (b *Booking) VolumeOrZero() decimal.Decimal {
	if b.volume == nil {
		return decimal.Zero
	}
	return *b.volume
}

// Packages is the number of parcels handed to the carrier.
func (b *Booking) Packages() int {
	return b.packages
}

// TotalPrice is weight times the course price per kg at booking time, in cents
// precision. Later price changes on the course do not touch it.
func (b *Booking) TotalPrice() decimal.Decimal {
	return b.totalPrice
}

// Status returns the current lifecycle state.
func (b *Booking) Status() Status {
	return b.status
}

// CreatedAt is when the reservation was made.
func (b *Booking) CreatedAt() time.Time {
	return b.createdAt
}

// CountsTowardsCapacity reports whether the booking consumes course capacity.
func (b *Booking) CountsTowardsCapacity() bool {
	return b.status != Cancelled
}

// Confirm accepts a Pending booking on behalf of the carrier.
func (b *Booking) Confirm() error {
	return b.fire(Confirm)
}

// PickUp records that the carrier collected the parcels.
func (b *Booking) PickUp() error {
	return b.fire(PickUp)
}

// Deliver closes a picked-up booking. Its total price then counts as realized revenue
// of the course.
func (b *Booking) Deliver() error {
	return b.fire(Deliver)
}

// Cancel releases the booking's capacity. Only Pending and Confirmed bookings can be
// cancelled; the caller reopens a Full course afterwards.
func (b *Booking) Cancel() error {
	return b.fire(Cancel)
}

func (b *Booking) fire(event Event) error {
	next, err := b.status.Fire(event)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}
