package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/models"
	"github.com/SoftwareSushi/gpt-academy/internal/repository"
	"github.com/SoftwareSushi/gpt-academy/pkg/ai"
)

// FeedbackService holds the single judge verdict per session. Requesting
// feedback while one is in flight is rejected rather than queued, and a new
// verdict replaces the prior one wholesale.
type FeedbackService interface {
	Get(ctx context.Context, sessionID string) (dto.FeedbackResponse, error)
	Request(ctx context.Context, sessionID string) (dto.FeedbackResponse, error)
}

type feedbackService struct {
	sessions     repository.SessionRepository
	turns        repository.TurnRepository
	assignments  repository.AssignmentRepository
	feedback     repository.FeedbackRepository
	judge        ai.Judge
	runtime      *Runtime
	broker       *EventBroker
	cache        *SnapshotCache
	judgeTimeout time.Duration
	logger       zerolog.Logger
}

// NewFeedbackService builds a new feedback service.
func NewFeedbackService(
	sessions repository.SessionRepository,
	turns repository.TurnRepository,
	assignments repository.AssignmentRepository,
	feedback repository.FeedbackRepository,
	judge ai.Judge,
	runtime *Runtime,
	broker *EventBroker,
	cache *SnapshotCache,
	judgeTimeout time.Duration,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackService{
		sessions:     sessions,
		turns:        turns,
		assignments:  assignments,
		feedback:     feedback,
		judge:        judge,
		runtime:      runtime,
		broker:       broker,
		cache:        cache,
		judgeTimeout: judgeTimeout,
		logger:       logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) Get(ctx context.Context, sessionID string) (dto.FeedbackResponse, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrSessionNotFound
		}

		return dto.FeedbackResponse{}, err
	}

	verdict, err := s.feedback.GetBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrFeedbackNotFound
		}

		return dto.FeedbackResponse{}, err
	}

	return dto.NewFeedbackResponse(verdict), nil
}

// Request grades the current conversation against the committed assignment
// and replaces the stored verdict. A second request while one is pending
// returns ErrFeedbackPending.
func (s *feedbackService) Request(ctx context.Context, sessionID string) (dto.FeedbackResponse, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrSessionNotFound
		}

		return dto.FeedbackResponse{}, err
	}

	if err := s.runtime.BeginFeedback(sessionID); err != nil {
		return dto.FeedbackResponse{}, err
	}
	defer s.runtime.EndFeedback(sessionID)

	assignment, err := s.assignments.GetBySession(ctx, sessionID)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	turns, err := s.turns.ListBySession(ctx, sessionID)
	if err != nil {
		return dto.FeedbackResponse{}, err
	}

	messages := make([]ai.Message, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, ai.Message{Role: turn.Role, Content: turn.Content})
	}

	judgeCtx, cancel := context.WithTimeout(ctx, s.judgeTimeout)
	defer cancel()

	result, err := s.judge.Evaluate(judgeCtx, ai.JudgeInput{
		Turns:        messages,
		Title:        assignment.Title,
		Instructions: assignment.Instructions,
		Rubric:       assignment.Rubric,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("judge evaluation failed")
		return dto.FeedbackResponse{}, fmt.Errorf("%w: %v", ErrFeedbackFailed, err)
	}

	verdict := models.Feedback{
		SessionID:    sessionID,
		Score:        result.Score,
		Explanation:  result.Explanation,
		Strengths:    datatypes.NewJSONSlice(result.Strengths),
		Improvements: datatypes.NewJSONSlice(result.Improvements),
	}
	if err := s.feedback.Replace(ctx, &verdict); err != nil {
		return dto.FeedbackResponse{}, err
	}

	s.cache.Invalidate(ctx, sessionID)

	response := dto.NewFeedbackResponse(verdict)
	s.broker.Publish(Event{
		SessionID: sessionID,
		Type:      EventFeedbackReady,
		Payload:   response,
	})

	return response, nil
}
