package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/hotelbook/service-booking/internal/domain/booking"
	feedbackDomain "github.com/hotelbook/service-booking/internal/domain/feedback"
	roomDomain "github.com/hotelbook/service-booking/internal/domain/room"
	"go.uber.org/zap"
)

// CreateFeedbackRequest holds a new review.
type CreateFeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// UpdateFeedbackRequest holds the fields of a review to change.
type UpdateFeedbackRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

// FeedbackDTO is the API response representation of feedback.
type FeedbackDTO struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FeedbackService handles room feedback use cases.
type FeedbackService struct {
	repo     feedbackDomain.FeedbackRepository
	bookings bookingDomain.BookingRepository
	rooms    roomDomain.RoomDirectory
	logger   *zap.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(
	repo feedbackDomain.FeedbackRepository,
	bookings bookingDomain.BookingRepository,
	rooms roomDomain.RoomDirectory,
	logger *zap.Logger,
) *FeedbackService {
	return &FeedbackService{repo: repo, bookings: bookings, rooms: rooms, logger: logger}
}

// CreateFeedback records a review by a guest who has booked the room.
func (s *FeedbackService) CreateFeedback(ctx context.Context, userID, roomID uuid.UUID, req CreateFeedbackRequest) (*FeedbackDTO, error) {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		return nil, err
	}

	stayed, err := s.bookings.HasBookingForRoom(ctx, userID, roomID)
	if err != nil {
		return nil, err
	}
	if !stayed {
		return nil, feedbackDomain.ErrNoStay
	}

	f, err := feedbackDomain.NewFeedback(roomID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}

	s.logger.Info("feedback created",
		zap.String("feedback_id", f.ID().String()),
		zap.String("room_id", roomID.String()),
		zap.Int("rating", f.Rating()),
	)
	return toFeedbackDTO(f), nil
}

// ListRoomFeedback returns a room's feedback, newest first.
func (s *FeedbackService) ListRoomFeedback(ctx context.Context, roomID uuid.UUID) ([]*FeedbackDTO, error) {
	list, err := s.repo.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*FeedbackDTO, len(list))
	for i, f := range list {
		dtos[i] = toFeedbackDTO(f)
	}
	return dtos, nil
}

// UpdateFeedback edits the caller's own feedback.
func (s *FeedbackService) UpdateFeedback(ctx context.Context, id, userID uuid.UUID, req UpdateFeedbackRequest) (*FeedbackDTO, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := f.Edit(userID, req.Rating, req.Comment); err != nil {
		return nil, err
	}
	f.IncrementVersion()
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return toFeedbackDTO(f), nil
}

// DeleteFeedback removes the caller's own feedback.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id, userID uuid.UUID) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := f.EnsureAuthor(userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("feedback deleted", zap.String("feedback_id", id.String()))
	return nil
}

func toFeedbackDTO(f *feedbackDomain.Feedback) *FeedbackDTO {
	return &FeedbackDTO{
		ID:        f.ID(),
		RoomID:    f.RoomID(),
		UserID:    f.UserID(),
		Rating:    f.Rating(),
		Comment:   f.Comment(),
		CreatedAt: f.CreatedAt(),
		UpdatedAt: f.UpdatedAt(),
	}
}
