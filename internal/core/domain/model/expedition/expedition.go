package expedition

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrExpeditionIsNotConstructed is returned when an Expedition bypassed NewExpedition or RestoreExpedition.
	ErrExpeditionIsNotConstructed = errors.New("Expedition must be created via NewExpedition constructor")
	// ErrDepartureIsRequired is returned for a zero departure date.
	ErrDepartureIsRequired = errs.NewValueIsRequiredError("departure")
)

// Details are the sender-editable attributes of an expedition.
type Details struct {
	Origin       kernel.Place
	Destination  kernel.Place
	Departure    time.Time
	Weight       decimal.Decimal
	Volume       decimal.Decimal
	Budget       *decimal.Decimal
	Urgency      Urgency
	Fragile      bool
	HeavyVehicle bool
	DistanceKm   *decimal.Decimal
}

// Validate checks the invariants shared by creation and update:
// weight > 0, volume ≥ 0.00001 m³, budget and distance non-negative when given.
func (d Details) Validate() error {
	var budgetErr, distanceErr, volumeErr error
	if d.Budget != nil {
		budgetErr = kernel.RequireNonNegative("budget", *d.Budget)
	}
	if d.DistanceKm != nil {
		distanceErr = kernel.RequireNonNegative("distance", *d.DistanceKm)
	}
	if d.Volume.LessThan(kernel.MinVolume) {
		volumeErr = errs.NewValueIsInvalidErrorWithCause(
			"volume", fmt.Errorf("%s is below the minimum of %s m³", d.Volume, kernel.MinVolume))
	}

	var departureErr error
	if d.Departure.IsZero() {
		departureErr = ErrDepartureIsRequired
	}

	return errors.Join(
		d.Origin.Validate(),
		d.Destination.Validate(),
		departureErr,
		kernel.RequirePositive("weight", d.Weight),
		volumeErr,
		budgetErr,
		distanceErr,
		d.Urgency.Validate(),
	)
}

// Expedition is a shipment request posted by a sender. It is the aggregate root
// for offers: offers reference it, and accepting one assigns it.
//
// Invariants:
//   - owned by exactly one sender, who alone may edit, publish, cancel or delete it
//   - edits and deletion only while Draft or Published
//   - status changes only through the expedition transition table
type Expedition struct {
	id             kernel.UUID
	senderID       kernel.UUID
	details        Details
	estimatedPrice *decimal.Decimal
	active         bool
	status         Status
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewExpedition creates an expedition owned by senderID. It starts Published,
// or Draft when draft is true.
func NewExpedition(
	id, senderID kernel.UUID,
	details Details,
	draft bool,
	createdAt time.Time,
) (*Expedition, error) {
	status := Published
	if draft {
		status = Draft
	}
	return RestoreExpedition(id, senderID, details, nil, true, status, createdAt)
}

// RestoreExpedition rebuilds an expedition from storage.
func RestoreExpedition(
	id, senderID kernel.UUID,
	details Details,
	estimatedPrice *decimal.Decimal,
	active bool,
	status Status,
	createdAt time.Time,
) (*Expedition, error) {
	if err := errors.Join(
		id.Validate(),
		senderID.Validate(),
		details.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Expedition{
		id:             id,
		senderID:       senderID,
		details:        details,
		estimatedPrice: estimatedPrice,
		active:         active,
		status:         status,
		createdAt:      createdAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the expedition was built by a constructor.
func (e *Expedition) Validate() error {
	if e == nil {
		return ErrExpeditionIsNotConstructed
	}
	return e.guard.Validate(ErrExpeditionIsNotConstructed)
}

// ID returns the expedition identifier.
func (e *Expedition) ID() kernel.UUID {
	return e.id
}

// SenderID returns the party that posted the expedition.
func (e *Expedition) SenderID() kernel.UUID {
	return e.senderID
}

// Details returns the editable details by value.
func (e *Expedition) Details() Details {
	return e.details
}

// Origin is the pickup place.
func (e *Expedition) Origin() kernel.Place {
	return e.details.Origin
}

// Destination is the drop-off place.
func (e *Expedition) Destination() kernel.Place {
	return e.details.Destination
}

// Departure is the requested pickup time.
func (e *Expedition) Departure() time.Time {
	return e.details.Departure
}

// Weight is the load weight in kg; carriers search it against their ceiling.
func (e *Expedition) Weight() decimal.Decimal {
	return e.details.Weight
}

// Volume is the load volume in m³.
func (e *Expedition) Volume() decimal.Decimal {
	return e.details.Volume
}

// Budget is the most the sender is willing to pay, nil when open. A search budget
// never excludes an expedition without one.
func (e *Expedition) Budget() *decimal.Decimal {
	return e.details.Budget
}

// Urgency is the first sort key of expedition search, most urgent first.
func (e *Expedition) Urgency() Urgency {
	return e.details.Urgency
}

// EstimatedPrice is the listed price derived from the distance, nil when no distance was given.
func (e *Expedition) EstimatedPrice() *decimal.Decimal {
	return e.estimatedPrice
}

// IsActive turns false on cancellation.
func (e *Expedition) IsActive() bool {
	return e.active
}

// Status returns the current lifecycle state.
func (e *Expedition) Status() Status {
	return e.status
}

// CreatedAt is when the sender first saved the expedition.
func (e *Expedition) CreatedAt() time.Time {
	return e.createdAt
}

// Update replaces the editable details. Only Draft and Published expeditions may change.
// The estimated price is cleared; the caller re-quotes it when a distance is present.
func (e *Expedition) Update(details Details) error {
	if !e.status.IsEditable() {
		return errs.NewIllegalTransitionError("expedition", e.status.String(), "Update")
	}
	if err := details.Validate(); err != nil {
		return err
	}
	e.details = details
	e.estimatedPrice = nil
	return nil
}

// SetEstimatedPrice records the quote computed by the pricing calculator.
func (e *Expedition) SetEstimatedPrice(price decimal.Decimal) error {
	if err := kernel.RequireNonNegative("estimated price", price); err != nil {
		return err
	}
	p := kernel.RoundMoney(price)
	e.estimatedPrice = &p
	return nil
}

// EnsureDeletable fails unless the expedition is still Draft or Published.
func (e *Expedition) EnsureDeletable() error {
	if !e.status.IsEditable() {
		return errs.NewIllegalTransitionError("expedition", e.status.String(), "Delete")
	}
	return nil
}

// Publish lists a Draft expedition to carriers.
func (e *Expedition) Publish() error {
	return e.fire(Publish)
}

// ReceiveOffer records that a carrier submitted an offer.
func (e *Expedition) ReceiveOffer() error {
	return e.fire(ReceiveOffer)
}

// Assign marks the expedition as taken by the carrier of an accepted offer.
func (e *Expedition) Assign() error {
	return e.fire(Assign)
}

// Complete closes an Assigned expedition once the carrier delivered it.
func (e *Expedition) Complete() error {
	return e.fire(Complete)
}

// Cancel withdraws the expedition and hides it from search.
func (e *Expedition) Cancel() error {
	if err := e.fire(Cancel); err != nil {
		return err
	}
	e.active = false
	return nil
}

func (e *Expedition) fire(event Event) error {
	next, err := e.status.Fire(event)
	if err != nil {
		return err
	}
	e.status = next
	return nil
}
