package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// AttachmentRepository defines persistence operations for knowledge
// attachments. Listing always returns insertion order (Position ASC).
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, id string) (models.Attachment, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Attachment, error)
	NextPosition(ctx context.Context, sessionID string) (int, error)
	SetExtractedContent(ctx context.Context, id, content string) (bool, error)
	SetInclusion(ctx context.Context, id string, included bool) (bool, error)
	Delete(ctx context.Context, id string) error
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository instantiates a GORM-backed repository.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepository) GetByID(ctx context.Context, id string) (models.Attachment, error) {
	var attachment models.Attachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		return models.Attachment{}, err
	}

	return attachment, nil
}

func (r *attachmentRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, err
	}

	return attachments, nil
}

func (r *attachmentRepository) NextPosition(ctx context.Context, sessionID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.Attachment{}).
		Where("session_id = ?", sessionID).
		Select("MAX(position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}

	return *max + 1, nil
}

// SetExtractedContent records the extraction result. Returns false when the
// attachment no longer exists, which is how a delete racing the extraction
// job degrades into a no-op.
func (r *attachmentRepository) SetExtractedContent(ctx context.Context, id, content string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Attachment{}).
		Where("id = ?", id).
		Update("extracted_content", content)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *attachmentRepository) SetInclusion(ctx context.Context, id string, included bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Attachment{}).
		Where("id = ?", id).
		Update("is_included", included)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Attachment{}, "id = ?", id).Error
}
