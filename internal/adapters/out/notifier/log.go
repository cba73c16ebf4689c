package notifier

import (
	"context"
	"log/slog"

	"freight/internal/core/ports"
)

// LogNotifier only logs events. It is the default when no broker is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, event ports.Event) error {
	n.logger.InfoContext(ctx, "Event",
		"type", event.Type,
		"aggregate_id", event.AggregateID,
		"recipients", event.Recipients,
		"payload", event.Payload,
	)
	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
