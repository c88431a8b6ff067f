package application_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hotelbook/service-booking/internal/application"
	bookingDomain "github.com/hotelbook/service-booking/internal/domain/booking"
	roomDomain "github.com/hotelbook/service-booking/internal/domain/room"
	"github.com/hotelbook/service-booking/internal/repository"
	"github.com/hotelbook/service-booking/internal/testutil"
	"github.com/hotelbook/service-booking/pkg/kafka"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var now = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

func at(h int) time.Time { return now.Add(time.Duration(h) * time.Hour) }

type mockRoomDirectory struct {
	mock.Mock
}

func (m *mockRoomDirectory) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*roomDomain.Room), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRoomDirectory) List(ctx context.Context, showInactive bool) ([]*roomDomain.Room, error) {
	args := m.Called(ctx, showInactive)
	return args.Get(0).([]*roomDomain.Room), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	return m.Called(ctx, topic, event).Error(0)
}

func newRoom(active bool) *roomDomain.Room {
	return roomDomain.Reconstruct(uuid.New(), "101", []string{"DOUBLE"}, decimal.NewFromInt(240), 2, "sea view", active, now, now)
}

type fixture struct {
	db      *gorm.DB
	repo    *repository.GormBookingRepository
	rooms   *mockRoomDirectory
	service *application.BookingService
}

func newFixture(t *testing.T, opts ...application.BookingOption) *fixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t, &repository.BookingModel{}, &repository.FeedbackModel{})
	repo := repository.NewGormBookingRepository(db)
	rooms := &mockRoomDirectory{}
	opts = append([]application.BookingOption{application.WithClock(func() time.Time { return now })}, opts...)
	svc := application.NewBookingService(repo, rooms, bookingDomain.NewTieredPricingStrategy(), nil, nil, zap.NewNop(), opts...)
	return &fixture{db: db, repo: repo, rooms: rooms, service: svc}
}

func (f *fixture) withRoom(active bool) *roomDomain.Room {
	r := newRoom(active)
	f.rooms.On("FindByID", mock.Anything, r.ID()).Return(r, nil)
	return r
}

// steppingClock advances one minute per call so creation order is observable.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	current := now
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Minute)
		return current
	}
}
