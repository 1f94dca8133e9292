package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/repository"
)

// AssignmentService manages the committed assignment of a session. Draft
// edits live in the client; only a save reaches Commit, so a cancelled edit
// never touches the record.
type AssignmentService interface {
	Get(ctx context.Context, sessionID string) (dto.AssignmentResponse, error)
	Commit(ctx context.Context, sessionID string, payload dto.AssignmentCommitRequest) (dto.AssignmentResponse, error)
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	cache       *SnapshotCache
	logger      zerolog.Logger
	now         func() time.Time
}

// NewAssignmentService builds a new assignment service.
func NewAssignmentService(assignments repository.AssignmentRepository, validate *validator.Validate, cache *SnapshotCache, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		validator:   validate,
		cache:       cache,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
		now:         time.Now,
	}
}

func (s *assignmentService) Get(ctx context.Context, sessionID string) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrSessionNotFound
		}

		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

// Commit merges the saved fields into the committed assignment. Fields
// absent from the payload keep their committed values.
func (s *assignmentService) Commit(ctx context.Context, sessionID string, payload dto.AssignmentCommitRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrSessionNotFound
		}

		return dto.AssignmentResponse{}, err
	}

	if payload.Title != nil {
		title := strings.TrimSpace(*payload.Title)
		if title == "" {
			return dto.AssignmentResponse{}, ErrEmptyTitle
		}
		assignment.Title = title
	}
	if payload.Instructions != nil {
		assignment.Instructions = *payload.Instructions
	}
	assignment.UpdatedAt = s.now()

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.cache.Invalidate(ctx, sessionID)
	s.logger.Info().Str("session_id", sessionID).Msg("assignment committed")

	return dto.NewAssignmentResponse(assignment), nil
}
