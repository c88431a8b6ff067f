package feedback

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hotelbook/service-booking/pkg/domain"
)

const (
	MinRating        = 1
	MaxRating        = 5
	maxCommentLength = 2000
)

// ErrNotAuthor is returned when someone other than the author edits or deletes feedback.
var ErrNotAuthor = domain.NewForbiddenError("you can only modify your own feedback").WithCode("NOT_FEEDBACK_AUTHOR")

// ErrNoStay is returned when the guest never booked the room.
var ErrNoStay = domain.NewValidationError("you can only review rooms you have booked").WithCode("NO_BOOKING_FOR_ROOM")

// Feedback is a guest's review of a room.
type Feedback struct {
	id        uuid.UUID
	roomID    uuid.UUID
	userID    uuid.UUID
	rating    int
	comment   string
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

func validate(rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return domain.NewValidationError(fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	if len(comment) > maxCommentLength {
		return domain.NewValidationError(fmt.Sprintf("comment must be at most %d characters", maxCommentLength))
	}
	return nil
}

// NewFeedback creates feedback for a room.
func NewFeedback(roomID, userID uuid.UUID, rating int, comment string) (*Feedback, error) {
	if roomID == uuid.Nil || userID == uuid.Nil {
		return nil, domain.NewValidationError("room ID and user ID are required")
	}
	comment = strings.TrimSpace(comment)
	if err := validate(rating, comment); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Feedback{
		id:        uuid.New(),
		roomID:    roomID,
		userID:    userID,
		rating:    rating,
		comment:   comment,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds Feedback from persistence.
func Reconstruct(id, roomID, userID uuid.UUID, rating int, comment string, version int64, createdAt, updatedAt time.Time) *Feedback {
	return &Feedback{
		id:        id,
		roomID:    roomID,
		userID:    userID,
		rating:    rating,
		comment:   comment,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Getters.
func (f *Feedback) ID() uuid.UUID        { return f.id }
func (f *Feedback) RoomID() uuid.UUID    { return f.roomID }
func (f *Feedback) UserID() uuid.UUID    { return f.userID }
func (f *Feedback) Rating() int          { return f.rating }
func (f *Feedback) Comment() string      { return f.comment }
func (f *Feedback) Version() int64       { return f.version }
func (f *Feedback) CreatedAt() time.Time { return f.createdAt }
func (f *Feedback) UpdatedAt() time.Time { return f.updatedAt }

// EnsureAuthor fails with ErrNotAuthor unless userID wrote the feedback.
func (f *Feedback) EnsureAuthor(userID uuid.UUID) error {
	if f.userID != userID {
		return ErrNotAuthor
	}
	return nil
}

// Edit replaces rating and comment. A nil argument keeps the current value.
func (f *Feedback) Edit(userID uuid.UUID, rating *int, comment *string) error {
	if err := f.EnsureAuthor(userID); err != nil {
		return err
	}
	newRating, newComment := f.rating, f.comment
	if rating != nil {
		newRating = *rating
	}
	if comment != nil {
		newComment = strings.TrimSpace(*comment)
	}
	if err := validate(newRating, newComment); err != nil {
		return err
	}
	f.rating = newRating
	f.comment = newComment
	f.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (f *Feedback) IncrementVersion() {
	f.version++
	f.updatedAt = time.Now().UTC()
}
