package feedback

import (
	"context"

	"github.com/google/uuid"
)

// FeedbackRepository defines persistence operations for room feedback.
type FeedbackRepository interface {
	Save(ctx context.Context, f *Feedback) error
	FindByID(ctx context.Context, id uuid.UUID) (*Feedback, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*Feedback, error)
	Update(ctx context.Context, f *Feedback) error
	Delete(ctx context.Context, id uuid.UUID) error
}
