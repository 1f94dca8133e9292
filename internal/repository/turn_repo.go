package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// TurnRepository persists conversation turns. Deliberately append-only:
// there is no update or delete operation on this interface.
type TurnRepository interface {
	Append(ctx context.Context, turn *models.ConversationTurn) error
	ListBySession(ctx context.Context, sessionID string) ([]models.ConversationTurn, error)
}

type turnRepository struct {
	db *gorm.DB
}

// NewTurnRepository instantiates a GORM-backed repository.
func NewTurnRepository(db *gorm.DB) TurnRepository {
	return &turnRepository{db: db}
}

func (r *turnRepository) Append(ctx context.Context, turn *models.ConversationTurn) error {
	return r.db.WithContext(ctx).Create(turn).Error
}

func (r *turnRepository) ListBySession(ctx context.Context, sessionID string) ([]models.ConversationTurn, error) {
	var turns []models.ConversationTurn
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Find(&turns).Error
	if err != nil {
		return nil, err
	}

	return turns, nil
}
