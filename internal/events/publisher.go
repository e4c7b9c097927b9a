package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"restaurant-pos/internal/store"
)

const (
	exchangeName   = "pos.orders"
	publishTimeout = 5 * time.Second
)

// Publisher forwards order store events to a RabbitMQ topic exchange so
// displays outside this process can follow order lifecycles. Register its
// Listen method as a store listener.
type Publisher struct {
	conn *amqp091.Connection
	ch   *amqp091.Channel
	log  *slog.Logger
}

// NewPublisher connects to the broker and declares the exchange
func NewPublisher(url string, log *slog.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{conn: conn, ch: ch, log: log}, nil
}

// Listen publishes one store event. Publish failures are logged, not
// propagated: eventing is best-effort and must never fail a commit or
// transition that already happened.
func (p *Publisher) Listen(ev store.Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("failed to marshal order event", "error", err)
		return
	}

	routingKey := fmt.Sprintf("orders.%s.%s", ev.Kind, ev.Order.Type)

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		ctx,
		exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			DeliveryMode:  amqp091.Persistent,
			ContentType:   "application/json",
			Body:          body,
			MessageId:     ev.Order.ID,
			CorrelationId: fmt.Sprintf("%d", ev.Order.Number),
			Timestamp:     time.Now().UTC(),
		},
	)
	if err != nil {
		p.log.Error("failed to publish order event",
			"error", err,
			"routing_key", routingKey,
			"order_number", ev.Order.Number,
		)
		return
	}

	p.log.Debug("published order event",
		"routing_key", routingKey,
		"order_number", ev.Order.Number,
	)
}

// Close releases the channel and connection
func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
