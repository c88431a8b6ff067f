package room

import (
	"context"

	"github.com/google/uuid"
)

// RoomDirectory is the read-only source of room data.
type RoomDirectory interface {
	// FindByID returns the room or a not-found domain error.
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// List returns rooms ordered by room number. Inactive rooms are included
	// only when showInactive is set.
	List(ctx context.Context, showInactive bool) ([]*Room, error)
}
