package commands

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/ports"
)

// EventPublisher hands committed events to the notifier. Delivery is best effort:
// failures are logged and counted, never returned to the caller.
type EventPublisher struct {
	notifier ports.Notifier
	logger   *slog.Logger
	recorder Recorder
}

// NewEventPublisher creates a publisher. A nil notifier drops every event.
func NewEventPublisher(notifier ports.Notifier, logger *slog.Logger, recorder Recorder) EventPublisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return EventPublisher{
		notifier: notifier,
		logger:   logger.With("component", "event_publisher"),
		recorder: recorder,
	}
}

func (p EventPublisher) Publish(ctx context.Context, events ...ports.Event) {
	if p.notifier == nil {
		return
	}
	for _, e := range events {
		if err := p.notifier.Notify(ctx, e); err != nil {
			p.recorder.NotificationFailed(string(e.Type))
			p.logger.WarnContext(ctx, "Notification failed",
				"event", e.Type, "aggregate_id", e.AggregateID, "error", err)
		}
	}
}

// Deps bundles what every command handler needs.
type Deps struct {
	Tx     *Transactor
	Events EventPublisher
	Now    func() time.Time
}

// NewDeps creates handler dependencies. A nil clock means time.Now in UTC.
func NewDeps(tx *Transactor, events EventPublisher, now func() time.Time) Deps {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return Deps{Tx: tx, Events: events, Now: now}
}
