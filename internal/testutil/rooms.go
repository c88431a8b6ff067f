package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hotelbook/service-booking/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedRoom inserts a room with a daily rate of 240 and returns its id.
func SeedRoom(t testing.TB, db *gorm.DB, number string, active bool) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	m := repository.RoomModel{
		ID:          uuid.New(),
		RoomNumber:  number,
		RoomTypes:   []string{"DOUBLE"},
		DailyRate:   decimal.NewFromInt(240),
		Capacity:    2,
		Description: "room " + number,
		IsActive:    active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, db.Create(&m).Error)
	// gorm skips zero-value bools that have a default tag on insert
	if !active {
		require.NoError(t, db.Model(&repository.RoomModel{}).Where("id = ?", m.ID).Update("is_active", false).Error)
	}
	return m.ID
}
