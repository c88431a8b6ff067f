package application

import (
	"context"

	"github.com/google/uuid"
	roomDomain "github.com/hotelbook/service-booking/internal/domain/room"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RoomDTO is the API response representation of a room.
type RoomDTO struct {
	ID          uuid.UUID       `json:"id"`
	RoomNumber  string          `json:"room_number"`
	RoomTypes   []string        `json:"room_types"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Capacity    int             `json:"capacity"`
	Description string          `json:"description"`
	IsActive    bool            `json:"is_active"`
}

// RoomService exposes the read side of the room directory.
type RoomService struct {
	rooms  roomDomain.RoomDirectory
	logger *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(rooms roomDomain.RoomDirectory, logger *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, logger: logger}
}

// ListRooms returns active rooms, or all rooms when showInactive is set.
func (s *RoomService) ListRooms(ctx context.Context, showInactive bool) ([]RoomDTO, error) {
	rooms, err := s.rooms.List(ctx, showInactive)
	if err != nil {
		return nil, err
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, r := range rooms {
		dtos[i] = toRoomDTO(r)
	}
	return dtos, nil
}

// GetRoom returns a single room.
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*RoomDTO, error) {
	r, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toRoomDTO(r)
	return &dto, nil
}

func toRoomDTO(r *roomDomain.Room) RoomDTO {
	return RoomDTO{
		ID:          r.ID(),
		RoomNumber:  r.RoomNumber(),
		RoomTypes:   r.RoomTypes(),
		DailyRate:   r.DailyRate(),
		Capacity:    r.Capacity(),
		Description: r.Description(),
		IsActive:    r.IsActive(),
	}
}
