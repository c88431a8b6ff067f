package repository_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hotelbook/service-booking/internal/repository"
	"github.com/hotelbook/service-booking/internal/testutil"
	"gorm.io/gorm"
)

func newDB(t *testing.T) *gorm.DB {
	return testutil.NewSQLiteDB(t, &repository.RoomModel{}, &repository.BookingModel{}, &repository.FeedbackModel{})
}

func seedRoom(t *testing.T, db *gorm.DB, number string, active bool) uuid.UUID {
	return testutil.SeedRoom(t, db, number, active)
}
