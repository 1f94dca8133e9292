package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/repository"
)

// SettingsService manages the per-session generation parameters.
type SettingsService interface {
	Get(ctx context.Context, sessionID string) (dto.SettingsResponse, error)
	Update(ctx context.Context, sessionID string, payload dto.SettingsUpdateRequest) (dto.SettingsResponse, error)
}

type settingsService struct {
	sessions  repository.SessionRepository
	validator *validator.Validate
	cache     *SnapshotCache
	logger    zerolog.Logger
	now       func() time.Time
}

// NewSettingsService builds a new settings service.
func NewSettingsService(sessions repository.SessionRepository, validate *validator.Validate, cache *SnapshotCache, logger zerolog.Logger) SettingsService {
	return &settingsService{
		sessions:  sessions,
		validator: validate,
		cache:     cache,
		logger:    logger.With().Str("component", "settings_service").Logger(),
		now:       time.Now,
	}
}

func (s *settingsService) Get(ctx context.Context, sessionID string) (dto.SettingsResponse, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SettingsResponse{}, ErrSessionNotFound
		}

		return dto.SettingsResponse{}, err
	}

	return dto.NewSettingsResponse(session.Settings), nil
}

// Update merges the named fields over the current settings, clamps every
// numeric parameter into its domain, and persists the result. Fields absent
// from the payload keep their prior values.
func (s *settingsService) Update(ctx context.Context, sessionID string, payload dto.SettingsUpdateRequest) (dto.SettingsResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SettingsResponse{}, err
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SettingsResponse{}, ErrSessionNotFound
		}

		return dto.SettingsResponse{}, err
	}

	session.Settings = payload.ApplyTo(session.Settings).Clamp()
	session.UpdatedAt = s.now()

	if err := s.sessions.Update(ctx, &session); err != nil {
		return dto.SettingsResponse{}, err
	}

	s.cache.Invalidate(ctx, sessionID)
	s.logger.Debug().Str("session_id", sessionID).Str("model", session.Settings.Model).Msg("settings updated")

	return dto.NewSettingsResponse(session.Settings), nil
}
