package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	roomDomain "github.com/hotelbook/service-booking/internal/domain/room"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const roomKeyPrefix = "booking:room:"

// cachedRoom is the JSON form of a room stored in Redis.
type cachedRoom struct {
	ID          uuid.UUID       `json:"id"`
	RoomNumber  string          `json:"room_number"`
	RoomTypes   []string        `json:"room_types"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Capacity    int             `json:"capacity"`
	Description string          `json:"description"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CachedRoomDirectory is a read-through Redis cache in front of a RoomDirectory.
// Single-room lookups are cached; listings always hit the source. Redis
// failures degrade to the source and are only logged.
type CachedRoomDirectory struct {
	next   roomDomain.RoomDirectory
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRoomDirectory wraps next with a Redis cache.
func NewCachedRoomDirectory(next roomDomain.RoomDirectory, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRoomDirectory {
	return &CachedRoomDirectory{next: next, client: client, ttl: ttl, logger: logger}
}

func roomKey(id uuid.UUID) string {
	return roomKeyPrefix + id.String()
}

// FindByID returns the cached room or loads and caches it.
func (c *CachedRoomDirectory) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	raw, err := c.client.Get(ctx, roomKey(id)).Bytes()
	switch {
	case err == nil:
		var cr cachedRoom
		if jsonErr := json.Unmarshal(raw, &cr); jsonErr == nil {
			return roomDomain.Reconstruct(cr.ID, cr.RoomNumber, cr.RoomTypes, cr.DailyRate, cr.Capacity,
				cr.Description, cr.IsActive, cr.CreatedAt, cr.UpdatedAt), nil
		}
		c.logger.Warn("discarding corrupt room cache entry", zap.String("room_id", id.String()))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("room cache read failed", zap.String("room_id", id.String()), zap.Error(err))
	}

	rm, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(cachedRoom{
		ID:          rm.ID(),
		RoomNumber:  rm.RoomNumber(),
		RoomTypes:   rm.RoomTypes(),
		DailyRate:   rm.DailyRate(),
		Capacity:    rm.Capacity(),
		Description: rm.Description(),
		IsActive:    rm.IsActive(),
		CreatedAt:   rm.CreatedAt(),
		UpdatedAt:   rm.UpdatedAt(),
	})
	if err == nil {
		if err := c.client.Set(ctx, roomKey(id), data, c.ttl).Err(); err != nil {
			c.logger.Warn("room cache write failed", zap.String("room_id", id.String()), zap.Error(err))
		}
	}
	return rm, nil
}

// List delegates to the underlying directory.
func (c *CachedRoomDirectory) List(ctx context.Context, showInactive bool) ([]*roomDomain.Room, error) {
	return c.next.List(ctx, showInactive)
}

// Invalidate drops the cached entry for a room.
func (c *CachedRoomDirectory) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, roomKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to evict room %s: %w", id, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *CachedRoomDirectory) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
