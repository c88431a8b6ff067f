package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hotelbook/service-booking/internal/metrics"
	"github.com/hotelbook/service-booking/pkg/kafka"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRoomCache struct {
	mock.Mock
}

func (m *mockRoomCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func message(t *testing.T, eventType string, data interface{}) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("service-inventory", eventType, data)
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Value: raw}
}

func newTestConsumer(cache RoomCache, m *metrics.Metrics) *RoomEventConsumer {
	return &RoomEventConsumer{cache: cache, metrics: m, logger: zap.NewNop()}
}

func TestRoomEventConsumer_Evicts(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	cache := &mockRoomCache{}
	cache.On("Invalidate", ctx, roomID).Return(nil).Twice()
	m := metrics.New(prometheus.NewRegistry())
	c := newTestConsumer(cache, m)

	require.NoError(t, c.handleMessage(ctx, message(t, RoomUpdated, RoomChangedEvent{RoomID: roomID})))
	require.NoError(t, c.handleMessage(ctx, message(t, RoomDeactivated, RoomChangedEvent{RoomID: roomID})))

	cache.AssertExpectations(t)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RoomCacheEvicted))
}

func TestRoomEventConsumer_IgnoresOtherEvents(t *testing.T) {
	ctx := context.Background()
	cache := &mockRoomCache{}
	c := newTestConsumer(cache, nil)

	require.NoError(t, c.handleMessage(ctx, message(t, "room.created", RoomChangedEvent{RoomID: uuid.New()})))
	require.NoError(t, c.handleMessage(ctx, kafkago.Message{Value: []byte("not json")}))
	require.NoError(t, c.handleMessage(ctx, message(t, RoomUpdated, map[string]string{"room_id": "bad"})))

	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestRoomEventConsumer_PropagatesCacheFailure(t *testing.T) {
	ctx := context.Background()
	roomID := uuid.New()
	cache := &mockRoomCache{}
	cache.On("Invalidate", ctx, roomID).Return(errors.New("redis down"))
	c := newTestConsumer(cache, nil)

	err := c.handleMessage(ctx, message(t, RoomUpdated, RoomChangedEvent{RoomID: roomID}))
	assert.EqualError(t, err, "redis down")
}
