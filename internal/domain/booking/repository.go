package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByUserID retrieves a guest's bookings, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Booking, error)

	// ListAll retrieves all bookings newest first. A non-positive limit returns every row.
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// FindConfirmedByRoom retrieves CONFIRMED bookings of a room, optionally
	// restricted to those overlapping window.
	FindConfirmedByRoom(ctx context.Context, roomID uuid.UUID, window *Interval) ([]*Booking, error)

	// HasBookingForRoom reports whether the user has ever booked the room.
	HasBookingForRoom(ctx context.Context, userID, roomID uuid.UUID) (bool, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error

	// WithRoomLock runs fn in a transaction that serializes writers of the
	// same room. fn must use the repository it is given.
	WithRoomLock(ctx context.Context, roomID uuid.UUID, fn func(repo BookingRepository) error) error
}
