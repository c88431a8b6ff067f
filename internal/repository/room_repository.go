package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	roomDomain "github.com/hotelbook/service-booking/internal/domain/room"
	"github.com/hotelbook/service-booking/pkg/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomModel is the GORM model for the rooms table. Rooms are owned by the
// inventory service; this service only reads them.
type RoomModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RoomNumber  string          `gorm:"size:20;not null;uniqueIndex"`
	RoomTypes   []string        `gorm:"type:text;serializer:json"`
	DailyRate   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Capacity    int             `gorm:"not null;default:2"`
	Description string          `gorm:"type:text"`
	IsActive    bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string { return "rooms" }

// GormRoomRepository implements RoomDirectory using GORM.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID retrieves a room by ID.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return toRoomDomain(&model), nil
}

// List retrieves rooms ordered by room number.
func (r *GormRoomRepository) List(ctx context.Context, showInactive bool) ([]*roomDomain.Room, error) {
	q := r.db.WithContext(ctx).Order("room_number ASC")
	if !showInactive {
		q = q.Where("is_active = ?", true)
	}

	var models []RoomModel
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	rooms := make([]*roomDomain.Room, len(models))
	for i := range models {
		rooms[i] = toRoomDomain(&models[i])
	}
	return rooms, nil
}

func toRoomDomain(m *RoomModel) *roomDomain.Room {
	types := m.RoomTypes
	if types == nil {
		types = []string{}
	}
	return roomDomain.Reconstruct(
		m.ID, m.RoomNumber, types, m.DailyRate, m.Capacity, m.Description, m.IsActive,
		m.CreatedAt.UTC(), m.UpdatedAt.UTC(),
	)
}
