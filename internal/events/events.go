package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicRoomEvents    = "room.events"
)

// Event types published by this service.
const (
	BookingCreated       = "booking.created"
	BookingCancelled     = "booking.cancelled"
	BookingStatusChanged = "booking.status_changed"
)

// Event types consumed from the inventory service.
const (
	RoomUpdated     = "room.updated"
	RoomDeactivated = "room.deactivated"
)

// EventSource is the CloudEvents source of everything this service emits.
const EventSource = "service-booking"

// BookingCreatedEvent is emitted after a booking is confirmed.
type BookingCreatedEvent struct {
	BookingID     uuid.UUID       `json:"booking_id"`
	RoomID        uuid.UUID       `json:"room_id"`
	UserID        uuid.UUID       `json:"user_id"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	DurationHours int             `json:"duration_hours"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	PaymentMethod string          `json:"payment_method"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// BookingCancelledEvent is emitted when a guest or admin cancels.
type BookingCancelledEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	RoomID      uuid.UUID `json:"room_id"`
	UserID      uuid.UUID `json:"user_id"`
	CancelledBy uuid.UUID `json:"cancelled_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is emitted on an admin status update.
type BookingStatusChangedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RoomChangedEvent is the payload of room.updated and room.deactivated.
type RoomChangedEvent struct {
	RoomID     uuid.UUID `json:"room_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
