package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/hotelbook/service-booking/internal/metrics"
	"github.com/hotelbook/service-booking/pkg/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RoomCache is the part of the room cache the consumer needs.
type RoomCache interface {
	Invalidate(ctx context.Context, id uuid.UUID) error
}

// RoomEventConsumer listens to inventory room events and evicts cached rooms
// so rate and active-flag changes reach the booking flow.
type RoomEventConsumer struct {
	consumer *kafka.Consumer
	cache    RoomCache
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewRoomEventConsumer creates a new RoomEventConsumer.
func NewRoomEventConsumer(
	brokers []string,
	groupID string,
	cache RoomCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *RoomEventConsumer {
	return &RoomEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, TopicRoomEvents, logger),
		cache:    cache,
		metrics:  m,
		logger:   logger,
	}
}

// Start begins consuming room events. This blocks until the context is cancelled.
func (c *RoomEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *RoomEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *RoomEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from room topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // malformed messages are not retried
	}

	switch cloudEvent.Type {
	case RoomUpdated, RoomDeactivated:
		return c.evict(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled room event type", zap.String("type", cloudEvent.Type))
		return nil
	}
}

func (c *RoomEventConsumer) evict(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt RoomChangedEvent
	if err := cloudEvent.ParseData(&evt); err != nil || evt.RoomID == uuid.Nil {
		c.logger.Error("invalid room event data",
			zap.String("type", cloudEvent.Type),
			zap.Error(err),
		)
		return nil
	}

	if err := c.cache.Invalidate(ctx, evt.RoomID); err != nil {
		c.logger.Error("failed to evict room from cache",
			zap.String("room_id", evt.RoomID.String()),
			zap.Error(err),
		)
		return err
	}

	c.metrics.IncRoomEviction()
	c.logger.Info("room cache entry evicted",
		zap.String("room_id", evt.RoomID.String()),
		zap.String("type", cloudEvent.Type),
	)
	return nil
}
