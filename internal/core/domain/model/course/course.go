package course

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCourseIsNotConstructed = errors.New("Course must be created via NewCourse constructor")
	ErrDepartureIsRequired    = errs.NewValueIsRequiredError("departure")
)

// Details are the carrier-editable attributes of a course.
type Details struct {
	Origin      kernel.Place
	Destination kernel.Place
	Stops       []string
	Departure   time.Time
	Arrival     time.Time
	MaxWeight   decimal.Decimal
	MaxVolume   *decimal.Decimal
	PricePerKg  decimal.Decimal
	VehicleType string
}

// Validate normalizes the stops in place and checks the attribute invariants.
func (d *Details) Validate() error {
	stops := make([]string, 0, len(d.Stops))
	var stopErr error
	for i, s := range d.Stops {
		s = strings.TrimSpace(s)
		if s == "" {
			stopErr = errs.NewValueIsRequiredError(fmt.Sprintf("stops[%d]", i))
			continue
		}
		stops = append(stops, s)
	}
	d.Stops = stops

	var departureErr, arrivalErr, volumeErr error
	if d.Departure.IsZero() {
		departureErr = ErrDepartureIsRequired
	}
	if !d.Arrival.IsZero() && d.Arrival.Before(d.Departure) {
		arrivalErr = errs.NewValueIsInvalidErrorWithCause("arrival", errors.New("arrival is before departure"))
	}
	if d.MaxVolume != nil {
		volumeErr = kernel.RequirePositive("max volume", *d.MaxVolume)
	}

	return errors.Join(
		d.Origin.Validate(),
		d.Destination.Validate(),
		stopErr,
		departureErr,
		arrivalErr,
		kernel.RequirePositive("max weight", d.MaxWeight),
		volumeErr,
		kernel.RequireNonNegative("price per kg", d.PricePerKg),
	)
}

// Course is capacity declared by a carrier. It is the aggregate root for bookings:
// reservations lock the course row before the ledger is recomputed.
type Course struct {
	id        kernel.UUID
	carrierID kernel.UUID
	details   Details
	active    bool
	status    Status
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewCourse creates an Available course owned by carrierID.
func NewCourse(id, carrierID kernel.UUID, details Details, createdAt time.Time) (*Course, error) {
	return RestoreCourse(id, carrierID, details, true, Available, createdAt)
}

// RestoreCourse rebuilds a course from storage with its stored status and active flag.
// The details are validated as on creation.
func RestoreCourse(
	id, carrierID kernel.UUID,
	details Details,
	active bool,
	status Status,
	createdAt time.Time,
) (*Course, error) {
	if err := errors.Join(
		id.Validate(),
		carrierID.Validate(),
		details.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Course{
		id:        id,
		carrierID: carrierID,
		details:   details,
		active:    active,
		status:    status,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the course was built by NewCourse or RestoreCourse. It returns
// ErrCourseIsNotConstructed otherwise.
func (c *Course) Validate() error {
	if c == nil {
		return ErrCourseIsNotConstructed
	}
	return c.guard.Validate(ErrCourseIsNotConstructed)
}

// ID returns the course identifier.
func (c *Course) ID() kernel.UUID {
	return c.id
}

// CarrierID returns the carrier that owns and drives the course.
func (c *Course) CarrierID() kernel.UUID {
	return c.carrierID
}

// Details returns a copy of the editable details. The stops slice is copied, so the
// caller may modify it freely.
func (c *Course) Details() Details {
	d := c.details
	d.Stops = append([]string(nil), c.details.Stops...)
	return d
}

// Origin is where the course departs from.
func (c *Course) Origin() kernel.Place {
	return c.details.Origin
}

// Destination is the final stop.
func (c *Course) Destination() kernel.Place {
	return c.details.Destination
}

// Stops returns the intermediate cities in route order.
func (c *Course) Stops() []string {
	return append([]string(nil), c.details.Stops...)
}

// Departure is the planned departure time, used for search windows and ordering.
func (c *Course) Departure() time.Time {
	return c.details.Departure
}

// Arrival is zero when the carrier did not announce one.
func (c *Course) Arrival() time.Time {
	return c.details.Arrival
}

// MaxWeight is the total weight the carrier sells, in kg.
func (c *Course) MaxWeight() decimal.Decimal {
	return c.details.MaxWeight
}

// MaxVolume is nil when the carrier did not declare a volume limit.
func (c *Course) MaxVolume() *decimal.Decimal {
	return c.details.MaxVolume
}

// PricePerKg is the rate applied to new bookings.
func (c *Course) PricePerKg() decimal.Decimal {
	return c.details.PricePerKg
}

// VehicleType is free text such as "van" or "truck".
func (c *Course) VehicleType() string {
	return c.details.VehicleType
}

// IsActive is false once the course is cancelled; inactive courses never match a search.
func (c *Course) IsActive() bool {
	return c.active
}

// Status returns the current lifecycle state.
func (c *Course) Status() Status {
	return c.status
}

// CreatedAt is when the course was published.
func (c *Course) CreatedAt() time.Time {
	return c.createdAt
}

// ServesDestination reports whether term matches the destination or any intermediate stop.
func (c *Course) ServesDestination(term string) bool {
	if c.details.Destination.Matches(term) {
		return true
	}
	for _, stop := range c.details.Stops {
		if kernel.ContainsFold(stop, term) {
			return true
		}
	}
	return false
}

// Update replaces the editable details. Only an Available course may change, and the new
// limits must still cover what is already committed.
func (c *Course) Update(details Details, committedWeight, committedVolume decimal.Decimal) error {
	if c.status != Available {
		return errs.NewIllegalTransitionError("course", c.status.String(), "Update")
	}
	if err := details.Validate(); err != nil {
		return err
	}
	if details.MaxWeight.LessThan(committedWeight) {
		return errs.NewCapacityExceededError("kg", committedWeight.String(), details.MaxWeight.String())
	}
	if details.MaxVolume != nil && details.MaxVolume.LessThan(committedVolume) {
		return errs.NewCapacityExceededError("m³", committedVolume.String(), details.MaxVolume.String())
	}
	c.details = details
	return nil
}

// EnsureDeletable fails unless the course is still Available.
func (c *Course) EnsureDeletable() error {
	if c.status != Available {
		return errs.NewIllegalTransitionError("course", c.status.String(), "Delete")
	}
	return nil
}

// Fill marks the course as fully booked.
func (c *Course) Fill() error {
	return c.fire(Fill)
}

// Reopen makes a Full course bookable again after capacity was released.
func (c *Course) Reopen() error {
	return c.fire(Reopen)
}

// Start marks an Available or Full course as under way. Bookings are then closed.
func (c *Course) Start() error {
	return c.fire(Start)
}

// Complete closes a course that is in progress.
func (c *Course) Complete() error {
	return c.fire(Complete)
}

// Cancel withdraws a course that has not started and hides it from search. Cancelling
// its bookings is up to the caller.
func (c *Course) Cancel() error {
	if err := c.fire(Cancel); err != nil {
		return err
	}
	c.active = false
	return nil
}

func (c *Course) fire(event Event) error {
	next, err := c.status.Fire(event)
	if err != nil {
		return err
	}
	c.status = next
	return nil
}
