package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	feedbackDomain "github.com/hotelbook/service-booking/internal/domain/feedback"
	"github.com/hotelbook/service-booking/pkg/domain"
	"gorm.io/gorm"
)

// FeedbackModel is the GORM model for the feedbacks table.
type FeedbackModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName sets the table name.
func (FeedbackModel) TableName() string { return "feedbacks" }

// GormFeedbackRepository implements FeedbackRepository using GORM.
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GormFeedbackRepository.
func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// Save persists new feedback.
func (r *GormFeedbackRepository) Save(ctx context.Context, f *feedbackDomain.Feedback) error {
	model := toFeedbackModel(f)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// FindByID returns a single feedback entry.
func (r *GormFeedbackRepository) FindByID(ctx context.Context, id uuid.UUID) (*feedbackDomain.Feedback, error) {
	var model FeedbackModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Feedback", id.String())
		}
		return nil, fmt.Errorf("failed to find feedback: %w", err)
	}
	return toFeedbackDomain(&model), nil
}

// FindByRoomID returns a room's feedback, newest first.
func (r *GormFeedbackRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*feedbackDomain.Feedback, error) {
	var models []FeedbackModel
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}

	out := make([]*feedbackDomain.Feedback, len(models))
	for i := range models {
		out[i] = toFeedbackDomain(&models[i])
	}
	return out, nil
}

// Update persists rating and comment with optimistic locking.
func (r *GormFeedbackRepository) Update(ctx context.Context, f *feedbackDomain.Feedback) error {
	result := r.db.WithContext(ctx).
		Model(&FeedbackModel{}).
		Where("id = ? AND version = ?", f.ID(), f.Version()-1).
		Updates(map[string]interface{}{
			"rating":     f.Rating(),
			"comment":    f.Comment(),
			"version":    f.Version(),
			"updated_at": f.UpdatedAt(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("feedback was modified by another request")
	}
	return nil
}

// Delete removes feedback by ID.
func (r *GormFeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&FeedbackModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete feedback: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Feedback", id.String())
	}
	return nil
}

func toFeedbackModel(f *feedbackDomain.Feedback) FeedbackModel {
	return FeedbackModel{
		ID:        f.ID(),
		RoomID:    f.RoomID(),
		UserID:    f.UserID(),
		Rating:    f.Rating(),
		Comment:   f.Comment(),
		Version:   f.Version(),
		CreatedAt: f.CreatedAt(),
		UpdatedAt: f.UpdatedAt(),
	}
}

func toFeedbackDomain(m *FeedbackModel) *feedbackDomain.Feedback {
	return feedbackDomain.Reconstruct(m.ID, m.RoomID, m.UserID, m.Rating, m.Comment, m.Version,
		m.CreatedAt.UTC(), m.UpdatedAt.UTC())
}
