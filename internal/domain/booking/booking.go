package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hotelbook/service-booking/pkg/auth"
	"github.com/hotelbook/service-booking/pkg/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultPaymentMethod is used when the guest does not choose one.
	DefaultPaymentMethod = "CASH"
	maxPaymentMethodLen  = 50
)

// Booking is the aggregate root for a room reservation. Only the status and
// the bookkeeping fields change after creation.
type Booking struct {
	id            uuid.UUID
	roomID        uuid.UUID
	userID        uuid.UUID
	startTime     time.Time
	endTime       time.Time
	durationHours int
	totalCost     decimal.Decimal
	paymentMethod string
	status        BookingStatus

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// ValidateInterval fails with ErrInvalidInterval when start is before now or
// end is not after start.
func ValidateInterval(start, end, now time.Time) error {
	if !end.After(start) {
		return ErrInvalidInterval.WithMessage("end time must be after start time")
	}
	if start.Before(now) {
		return ErrInvalidInterval.WithMessage("start time cannot be in the past")
	}
	return nil
}

// NormalizePaymentMethod applies the default and the length limit.
func NormalizePaymentMethod(method string) (string, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return DefaultPaymentMethod, nil
	}
	if len(method) > maxPaymentMethodLen {
		return "", domain.NewValidationError(
			fmt.Sprintf("payment method must be at most %d characters", maxPaymentMethodLen))
	}
	return method, nil
}

// NewBooking creates a confirmed Booking. totalCost is the price computed for
// the stay and is never recalculated afterwards.
func NewBooking(
	roomID uuid.UUID,
	userID uuid.UUID,
	startTime time.Time,
	endTime time.Time,
	totalCost decimal.Decimal,
	paymentMethod string,
	now time.Time,
) (*Booking, error) {
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if err := ValidateInterval(startTime, endTime, now); err != nil {
		return nil, err
	}
	if totalCost.IsNegative() {
		return nil, domain.NewValidationError("total cost cannot be negative")
	}
	method, err := NormalizePaymentMethod(paymentMethod)
	if err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Booking{
		id:            uuid.New(),
		roomID:        roomID,
		userID:        userID,
		startTime:     startTime.UTC(),
		endTime:       endTime.UTC(),
		durationHours: DurationHours(startTime, endTime),
		totalCost:     totalCost,
		paymentMethod: method,
		status:        StatusConfirmed,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructBooking rebuilds a Booking from persistence data (no validation).
func ReconstructBooking(
	id uuid.UUID,
	roomID uuid.UUID,
	userID uuid.UUID,
	startTime time.Time,
	endTime time.Time,
	durationHours int,
	totalCost decimal.Decimal,
	paymentMethod string,
	status BookingStatus,
	version int64,
	createdAt time.Time,
	updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		roomID:        roomID,
		userID:        userID,
		startTime:     startTime,
		endTime:       endTime,
		durationHours: durationHours,
		totalCost:     totalCost,
		paymentMethod: paymentMethod,
		status:        status,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// RoomID returns the booked room.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// UserID returns the guest who made the booking.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// StartTime returns the inclusive start of the stay.
func (b *Booking) StartTime() time.Time { return b.startTime }

// EndTime returns the exclusive end of the stay.
func (b *Booking) EndTime() time.Time { return b.endTime }

// Interval returns the booked time range.
func (b *Booking) Interval() Interval { return Interval{Start: b.startTime, End: b.endTime} }

// DurationHours returns the billed length of the stay in whole hours.
func (b *Booking) DurationHours() int { return b.durationHours }

// TotalCost returns the price fixed at creation.
func (b *Booking) TotalCost() decimal.Decimal { return b.totalCost }

// PaymentMethod returns the chosen payment method.
func (b *Booking) PaymentMethod() string { return b.paymentMethod }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsOwnedBy reports whether userID made the booking.
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool { return b.userID == userID }

// CanBeViewedBy reports whether the caller may read the booking.
func (b *Booking) CanBeViewedBy(userID uuid.UUID, role auth.Role) bool {
	return role == auth.RoleAdmin || b.IsOwnedBy(userID)
}

// --- Behavior ---

// Cancel moves the booking to CANCELLED. Only the owner or an admin may
// cancel, and a cancelled booking cannot be cancelled again. In strict mode
// checked-out bookings cannot be cancelled either.
func (b *Booking) Cancel(callerID uuid.UUID, role auth.Role, strict bool) error {
	if !b.CanBeViewedBy(callerID, role) {
		return ErrNotBookingOwner.WithMessage("you can only cancel your own bookings")
	}
	if b.status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	if strict && !b.status.CanBeCancelled() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return nil
}

// SetStatus overwrites the status with any recognized value. In strict mode
// the change must follow the forward-only transition graph.
func (b *Booking) SetStatus(status BookingStatus, strict bool) error {
	if !status.IsValid() {
		return ErrInvalidStatus.WithMessage(fmt.Sprintf("invalid booking status: %s", status))
	}
	if strict && !b.status.CanTransitionTo(status) {
		return domain.NewInvalidStateError(string(b.status), string(status))
	}
	b.status = status
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
