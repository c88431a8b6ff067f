package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hotelbook/service-booking/internal/repository"
	"github.com/hotelbook/service-booking/pkg/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRoomRepository(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	repo := repository.NewGormRoomRepository(db)

	active := seedRoom(t, db, "201", true)
	inactive := seedRoom(t, db, "101", false)

	rooms, err := repo.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, active, rooms[0].ID())
	assert.Equal(t, []string{"DOUBLE"}, rooms[0].RoomTypes())

	rooms, err = repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, inactive, rooms[0].ID())

	rm, err := repo.FindByID(ctx, inactive)
	require.NoError(t, err)
	assert.False(t, rm.IsActive())
	assert.Equal(t, "240", rm.DailyRate().String())

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, domain.IsNotFound(err))
}

func TestCachedRoomDirectory(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := repository.NewCachedRoomDirectory(repository.NewGormRoomRepository(db), client, time.Minute, zap.NewNop())
	id := seedRoom(t, db, "301", true)

	rm, err := cache.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, rm.IsActive())
	assert.True(t, mr.Exists("booking:room:"+id.String()))

	// a change in the source is hidden until the entry is evicted
	require.NoError(t, db.Model(&repository.RoomModel{}).Where("id = ?", id).Update("is_active", false).Error)
	rm, err = cache.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, rm.IsActive())
	assert.Equal(t, "240", rm.DailyRate().String())

	require.NoError(t, cache.Invalidate(ctx, id))
	rm, err = cache.FindByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, rm.IsActive())

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("booking:room:"+id.String()))

	_, err = cache.FindByID(ctx, uuid.New())
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, cache.Ping(ctx))
}

func TestCachedRoomDirectory_RedisDown(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	cache := repository.NewCachedRoomDirectory(repository.NewGormRoomRepository(db), client, time.Minute, zap.NewNop())
	id := seedRoom(t, db, "302", true)

	mr.Close()
	rm, err := cache.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rm.ID())
}
