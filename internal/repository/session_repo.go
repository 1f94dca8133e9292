package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// SessionRepository defines persistence operations for playground sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (models.Session, error)
	Update(ctx context.Context, session *models.Session) error
}

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository instantiates a GORM-backed repository.
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return models.Session{}, err
	}

	return session, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}
