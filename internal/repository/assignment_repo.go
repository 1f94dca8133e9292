package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// AssignmentRepository defines persistence operations for the per-session
// assignment record.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetBySession(ctx context.Context, sessionID string) (models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) GetBySession(ctx context.Context, sessionID string) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, "session_id = ?", sessionID).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// FeedbackRepository persists the single-slot judge verdict per session.
type FeedbackRepository interface {
	Replace(ctx context.Context, feedback *models.Feedback) error
	GetBySession(ctx context.Context, sessionID string) (models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository instantiates a GORM-backed repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Replace upserts the feedback row: the prior verdict, including its
// strengths and improvements, is overwritten wholesale.
func (r *feedbackRepository) Replace(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			UpdateAll: true,
		}).
		Create(feedback).Error
}

func (r *feedbackRepository) GetBySession(ctx context.Context, sessionID string) (models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.WithContext(ctx).First(&feedback, "session_id = ?", sessionID).Error; err != nil {
		return models.Feedback{}, err
	}

	return feedback, nil
}
