package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/hotelbook/service-booking/internal/domain/booking"
	"github.com/hotelbook/service-booking/pkg/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// exclusionViolation is the PostgreSQL SQLSTATE raised by the
// bookings_no_overlap constraint.
const exclusionViolation = "23P01"

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RoomID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_bookings_room_status"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartTime     time.Time       `gorm:"not null"`
	EndTime       time.Time       `gorm:"not null"`
	DurationHours int             `gorm:"not null"`
	TotalCost     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PaymentMethod string          `gorm:"size:50;not null;default:'CASH'"`
	Status        string          `gorm:"size:20;not null;index:idx_bookings_room_status"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByUserID retrieves a guest's bookings, newest first.
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find user bookings: %w", err)
	}
	return toDomainBookings(models)
}

// ListAll retrieves all bookings newest first. A non-positive limit disables paging.
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * limit).Limit(limit)
	}

	var models []BookingModel
	if err := q.Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// FindConfirmedByRoom retrieves CONFIRMED bookings of a room ordered by start
// time. With a window only bookings overlapping it are returned.
func (r *GormBookingRepository) FindConfirmedByRoom(ctx context.Context, roomID uuid.UUID, window *bookingDomain.Interval) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, string(bookingDomain.StatusConfirmed))
	if window != nil {
		q = q.Where("start_time < ? AND end_time > ?", window.End.UTC(), window.Start.UTC())
	}

	var models []BookingModel
	if err := q.Order("start_time ASC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find room bookings: %w", err)
	}
	return toDomainBookings(models)
}

// HasBookingForRoom reports whether the user has any booking for the room.
func (r *GormBookingRepository) HasBookingForRoom(ctx context.Context, userID, roomID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room bookings: %w", err)
	}
	return count > 0, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isExclusionViolation(err) {
			return bookingDomain.ErrSlotUnavailable
		}
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists the mutable fields of a booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	// IncrementVersion was called by the caller, so the stored row holds version-1.
	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", bk.ID(), expectedVersion).
		Updates(map[string]interface{}{
			"status":     string(bk.Status()),
			"version":    bk.Version(),
			"updated_at": bk.UpdatedAt(),
		})

	if result.Error != nil {
		if isExclusionViolation(result.Error) {
			return bookingDomain.ErrSlotUnavailable
		}
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}

	return nil
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// WithRoomLock runs fn inside a transaction. On PostgreSQL the transaction
// first takes an advisory lock keyed on the room, released at commit.
func (r *GormBookingRepository) WithRoomLock(ctx context.Context, roomID uuid.UUID, fn func(repo bookingDomain.BookingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", roomID.String()).Error; err != nil {
				return fmt.Errorf("failed to lock room %s: %w", roomID, err)
			}
		}
		return fn(&GormBookingRepository{db: tx})
	})
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == exclusionViolation
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:            bk.ID(),
		RoomID:        bk.RoomID(),
		UserID:        bk.UserID(),
		StartTime:     bk.StartTime().UTC(),
		EndTime:       bk.EndTime().UTC(),
		DurationHours: bk.DurationHours(),
		TotalCost:     bk.TotalCost(),
		PaymentMethod: bk.PaymentMethod(),
		Status:        string(bk.Status()),
		Version:       bk.Version(),
		CreatedAt:     bk.CreatedAt(),
		UpdatedAt:     bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", m.ID, err)
	}

	return bookingDomain.ReconstructBooking(
		m.ID,
		m.RoomID,
		m.UserID,
		m.StartTime.UTC(),
		m.EndTime.UTC(),
		m.DurationHours,
		m.TotalCost,
		m.PaymentMethod,
		status,
		m.Version,
		m.CreatedAt.UTC(),
		m.UpdatedAt.UTC(),
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
