package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hotelbook/service-booking/pkg/kafka"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends CloudEvents to a durable topic exchange. The Kafka topic
// name is used as the routing key prefix so consumers can bind "booking.#".
type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewPublisher dials RabbitMQ and declares the exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// RoutingKey returns the key an event is published under.
func RoutingKey(topic string, event kafka.CloudEvent) string {
	return topic + "." + event.Type
}

// PublishEvent publishes event as a persistent JSON message.
func (p *Publisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cloud event: %w", err)
	}
	return p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(topic, event), false, false, amqp.Publishing{
		ContentType:  "application/cloudevents+json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Type:         event.Type,
		AppId:        event.Source,
		Timestamp:    event.Time,
		Body:         body,
	})
}

// Close closes the channel and connection.
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
