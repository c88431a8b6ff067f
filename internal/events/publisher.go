package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/hotelbook/service-booking/pkg/config"
	"github.com/hotelbook/service-booking/pkg/kafka"
	"github.com/hotelbook/service-booking/pkg/mq"
	"go.uber.org/zap"
)

// Supported values of EVENTS_BROKER.
const (
	BrokerKafka    = "kafka"
	BrokerRabbitMQ = "rabbitmq"
	BrokerNone     = "none"
)

// Publisher sends CloudEvents to a broker.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
	Close() error
}

type noopPublisher struct{}

func (noopPublisher) PublishEvent(context.Context, string, kafka.CloudEvent) error { return nil }
func (noopPublisher) Close() error                                                 { return nil }

// NewPublisher builds the publisher selected by broker.
func NewPublisher(broker string, kcfg config.KafkaConfig, rcfg config.RabbitConfig, logger *zap.Logger) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(broker)) {
	case "", BrokerKafka:
		logger.Info("publishing events to kafka", zap.Strings("brokers", kcfg.Brokers))
		return kafka.NewProducer(kcfg.Brokers, logger), nil
	case BrokerRabbitMQ:
		p, err := mq.NewPublisher(rcfg.URL, rcfg.Exchange)
		if err != nil {
			return nil, err
		}
		logger.Info("publishing events to rabbitmq", zap.String("exchange", rcfg.Exchange))
		return p, nil
	case BrokerNone:
		logger.Warn("event publishing disabled")
		return noopPublisher{}, nil
	default:
		return nil, fmt.Errorf("unknown events broker %q", broker)
	}
}
