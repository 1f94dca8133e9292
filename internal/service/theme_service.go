package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
)

// Theme values persisted per client.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeService persists the light/dark preference per client in Redis. A
// client with no stored value, or whose stored value does not parse, is
// treated as light.
type ThemeService interface {
	Get(ctx context.Context, clientID string) (dto.ThemeResponse, error)
	Toggle(ctx context.Context, clientID string) (dto.ThemeResponse, error)
}

type themeService struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewThemeService builds a new theme service.
func NewThemeService(client *redis.Client, logger zerolog.Logger) ThemeService {
	return &themeService{
		redis:  client,
		logger: logger.With().Str("component", "theme_service").Logger(),
	}
}

func themeKey(clientID string) string {
	return fmt.Sprintf("gpt-academy:theme:%s", clientID)
}

func (s *themeService) current(ctx context.Context, clientID string) string {
	if s.redis == nil {
		return ThemeLight
	}

	stored, err := s.redis.Get(ctx, themeKey(clientID)).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read theme preference")
		}
		return ThemeLight
	}
	if stored != ThemeDark {
		return ThemeLight
	}

	return ThemeDark
}

func (s *themeService) Get(ctx context.Context, clientID string) (dto.ThemeResponse, error) {
	return dto.ThemeResponse{Theme: s.current(ctx, clientID)}, nil
}

// Toggle flips the preference and persists it. The stored value has no
// expiry: the preference survives across sessions.
func (s *themeService) Toggle(ctx context.Context, clientID string) (dto.ThemeResponse, error) {
	next := ThemeDark
	if s.current(ctx, clientID) == ThemeDark {
		next = ThemeLight
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, themeKey(clientID), next, 0).Err(); err != nil {
			return dto.ThemeResponse{}, err
		}
	}

	return dto.ThemeResponse{Theme: next}, nil
}
