package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"freight/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitMQNotifier publishes to a durable topic exchange with the event type
// as routing key, so consumers can bind to "booking.*" and the like.
type RabbitMQNotifier struct {
	conn     *amqp.Connection
	chn      *amqp.Channel
	pub      publisher
	exchange string
}

func NewRabbitMQNotifier(cfg RabbitMQConfig) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	chn, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = chn.ExchangeDeclare(
		cfg.Exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = chn.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	n := newRabbitMQNotifier(chn, cfg.Exchange)
	n.conn, n.chn = conn, chn
	return n, nil
}

func newRabbitMQNotifier(pub publisher, exchange string) *RabbitMQNotifier {
	return &RabbitMQNotifier{pub: pub, exchange: exchange}
}

func (n *RabbitMQNotifier) Notify(ctx context.Context, event ports.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.Type, err)
	}

	return n.pub.PublishWithContext(ctx, n.exchange, string(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.AggregateID,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Body:         body,
	})
}

func (n *RabbitMQNotifier) Close() error {
	var errs []error
	if n.chn != nil {
		errs = append(errs, n.chn.Close())
	}
	if n.conn != nil {
		errs = append(errs, n.conn.Close())
	}
	return errors.Join(errs...)
}
