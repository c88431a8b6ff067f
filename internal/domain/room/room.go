package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Room is a bookable unit as published by the room directory. This service
// never mutates rooms.
type Room struct {
	id          uuid.UUID
	roomNumber  string
	roomTypes   []string
	dailyRate   decimal.Decimal
	capacity    int
	description string
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

// Reconstruct rebuilds a Room from directory data.
func Reconstruct(
	id uuid.UUID,
	roomNumber string,
	roomTypes []string,
	dailyRate decimal.Decimal,
	capacity int,
	description string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:          id,
		roomNumber:  roomNumber,
		roomTypes:   roomTypes,
		dailyRate:   dailyRate,
		capacity:    capacity,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Getters.
func (r *Room) ID() uuid.UUID              { return r.id }
func (r *Room) RoomNumber() string         { return r.roomNumber }
func (r *Room) RoomTypes() []string        { return r.roomTypes }
func (r *Room) DailyRate() decimal.Decimal { return r.dailyRate }
func (r *Room) Capacity() int              { return r.capacity }
func (r *Room) Description() string        { return r.description }
func (r *Room) IsActive() bool             { return r.isActive }
func (r *Room) CreatedAt() time.Time       { return r.createdAt }
func (r *Room) UpdatedAt() time.Time       { return r.updatedAt }
