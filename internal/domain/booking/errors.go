package booking

import "github.com/hotelbook/service-booking/pkg/domain"

// Error codes reported to API clients.
const (
	CodeInvalidInterval  = "INVALID_INTERVAL"
	CodeRoomInactive     = "ROOM_INACTIVE"
	CodeSlotUnavailable  = "SLOT_UNAVAILABLE"
	CodeNotBookingOwner  = "NOT_BOOKING_OWNER"
	CodeAlreadyCancelled = "ALREADY_CANCELLED"
	CodeInvalidStatus    = "INVALID_STATUS"
)

// Sentinels for errors.Is. DomainError matches on code, so messages may be
// refined with WithMessage without breaking comparisons.
var (
	ErrInvalidInterval = domain.NewValidationError(
		"start time must be in the future and before end time").WithCode(CodeInvalidInterval)
	ErrRoomInactive = domain.NewValidationError(
		"room is not available for booking").WithCode(CodeRoomInactive)
	ErrSlotUnavailable = domain.NewValidationError(
		"room is already booked for the requested time").WithCode(CodeSlotUnavailable)
	ErrNotBookingOwner = domain.NewForbiddenError(
		"only the booking owner or an admin may do this").WithCode(CodeNotBookingOwner)
	ErrAlreadyCancelled = domain.NewInvalidStateError(
		string(StatusCancelled), string(StatusCancelled)).WithCode(CodeAlreadyCancelled).WithMessage("booking is already cancelled")
	ErrInvalidStatus = domain.NewValidationError(
		"invalid booking status").WithCode(CodeInvalidStatus)
)
