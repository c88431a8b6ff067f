package events

import (
	"context"
	"testing"

	"github.com/hotelbook/service-booking/pkg/config"
	"github.com/hotelbook/service-booking/pkg/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPublisher(t *testing.T) {
	log := zap.NewNop()

	p, err := NewPublisher("none", config.KafkaConfig{}, config.RabbitConfig{}, log)
	require.NoError(t, err)
	assert.NoError(t, p.PublishEvent(context.Background(), TopicBookingEvents, kafka.CloudEvent{}))
	assert.NoError(t, p.Close())

	p, err = NewPublisher("", config.KafkaConfig{Brokers: []string{"localhost:9092"}}, config.RabbitConfig{}, log)
	require.NoError(t, err)
	assert.IsType(t, &kafka.Producer{}, p)
	assert.NoError(t, p.Close())

	_, err = NewPublisher("carrier-pigeon", config.KafkaConfig{}, config.RabbitConfig{}, log)
	assert.Error(t, err)
}
