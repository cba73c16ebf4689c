package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
)

// EventType names a marketplace event published after a successful transaction.
type EventType string

const (
	ExpeditionPublished EventType = "expedition.published"
	ExpeditionCancelled EventType = "expedition.cancelled"
	ExpeditionCompleted EventType = "expedition.completed"
	CourseCreated       EventType = "course.created"
	CourseCancelled     EventType = "course.cancelled"
	CourseStarted       EventType = "course.started"
	CourseCompleted     EventType = "course.completed"
	OfferSubmitted      EventType = "offer.submitted"
	OfferAccepted       EventType = "offer.accepted"
	OfferRejected       EventType = "offer.rejected"
	OfferExpired        EventType = "offer.expired"
	BookingCreated      EventType = "booking.created"
	BookingConfirmed    EventType = "booking.confirmed"
	BookingPickedUp     EventType = "booking.picked_up"
	BookingDelivered    EventType = "booking.delivered"
	BookingCancelled    EventType = "booking.cancelled"
	ReviewSubmitted     EventType = "review.submitted"
)

// Event is what the engine tells the outside world about a committed change.
// Recipients are the parties a delivery service should contact.
type Event struct {
	Type        EventType         `json:"type"`
	AggregateID string            `json:"aggregateId"`
	Recipients  []string          `json:"recipients"`
	Payload     map[string]string `json:"payload,omitempty"`
	OccurredAt  time.Time         `json:"occurredAt"`
}

// NewEvent builds an event about aggregateID addressed to recipients.
func NewEvent(t EventType, aggregateID kernel.UUID, occurredAt time.Time, recipients ...kernel.UUID) Event {
	ids := make([]string, 0, len(recipients))
	for _, r := range recipients {
		ids = append(ids, r.String())
	}
	return Event{
		Type:        t,
		AggregateID: aggregateID.String(),
		Recipients:  ids,
		OccurredAt:  occurredAt,
	}
}

// With returns a copy of e carrying key=value in its payload.
func (e Event) With(key, value string) Event {
	payload := make(map[string]string, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value
	e.Payload = payload
	return e
}

// Notifier publishes events to whoever delivers notifications. It is called after
// commit; a failure must never undo the write that produced the event.
//
//go:generate mockgen -destination=../../mocks/notifier_mock.go -package=mocks freight/internal/core/ports Notifier
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
