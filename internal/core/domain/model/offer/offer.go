package offer

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrOfferIsNotConstructed is returned by Validate for a zero-value Offer.
var ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")

// Offer is a carrier's priced proposal against an expedition.
type Offer struct {
	id           kernel.UUID
	expeditionID kernel.UUID
	carrierID    kernel.UUID
	price        decimal.Decimal
	message      string
	status       Status
	createdAt    time.Time
	expiresAt    time.Time
	guard        guard.ConstructorGuard
}

// NewOffer creates a Pending offer. A zero ttl means the offer never expires on its own.
func NewOffer(
	id, expeditionID, carrierID kernel.UUID,
	price decimal.Decimal,
	message string,
	createdAt time.Time,
	ttl time.Duration,
) (*Offer, error) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = createdAt.Add(ttl)
	}
	return RestoreOffer(id, expeditionID, carrierID, price, message, Pending, createdAt, expiresAt)
}

// RestoreOffer rebuilds an offer from storage. A zero expiresAt means no deadline.
// The price is rounded to cents and the message trimmed, as on creation.
func RestoreOffer(
	id, expeditionID, carrierID kernel.UUID,
	price decimal.Decimal,
	message string,
	status Status,
	createdAt, expiresAt time.Time,
) (*Offer, error) {
	if err := errors.Join(
		id.Validate(),
		expeditionID.Validate(),
		carrierID.Validate(),
		kernel.RequirePositive("price", price),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Offer{
		id:           id,
		expeditionID: expeditionID,
		carrierID:    carrierID,
		price:        kernel.RoundMoney(price),
		message:      strings.TrimSpace(message),
		status:       status,
		createdAt:    createdAt,
		expiresAt:    expiresAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the offer was built by a constructor.
func (o *Offer) Validate() error {
	if o == nil {
		return ErrOfferIsNotConstructed
	}
	return o.guard.Validate(ErrOfferIsNotConstructed)
}

// ID returns the offer identifier.
func (o *Offer) ID() kernel.UUID {
	return o.id
}

// ExpeditionID returns the expedition the offer bids on.
func (o *Offer) ExpeditionID() kernel.UUID {
	return o.expeditionID
}

// CarrierID returns the carrier that made the offer.
func (o *Offer) CarrierID() kernel.UUID {
	return o.carrierID
}

// Price is the proposed total for the whole expedition.
func (o *Offer) Price() decimal.Decimal {
	return o.price
}

// Message is the carrier's optional note to the sender.
func (o *Offer) Message() string {
	return o.message
}

// Status returns the current lifecycle state.
func (o *Offer) Status() Status {
	return o.status
}

// CreatedAt orders offers within an expedition.
func (o *Offer) CreatedAt() time.Time {
	return o.createdAt
}

// ExpiresAt is zero for offers without a deadline.
func (o *Offer) ExpiresAt() time.Time {
	return o.expiresAt
}

// IsExpiredAt reports whether a Pending offer has passed its deadline at now.
func (o *Offer) IsExpiredAt(now time.Time) bool {
	return o.status == Pending && !o.expiresAt.IsZero() && !now.Before(o.expiresAt)
}

// Accept marks the offer as chosen by the sender. The acceptance service rejects the
// expedition's other pending offers in the same transaction.
func (o *Offer) Accept() error {
	return o.fire(Accept)
}

// Reject declines a Pending offer.
func (o *Offer) Reject() error {
	return o.fire(Reject)
}

// Expire closes a Pending offer past its deadline; the expiry job is the only caller.
func (o *Offer) Expire() error {
	return o.fire(Expire)
}

func (o *Offer) fire(event Event) error {
	next, err := o.status.Fire(event)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}
