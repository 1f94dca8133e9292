package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/models"
	"github.com/SoftwareSushi/gpt-academy/internal/repository"
	"github.com/SoftwareSushi/gpt-academy/pkg/ai"
)

// ConversationService drives the session's exchange loop with the
// completion engine. Turns are append-only: a submit adds the user turn
// immediately and the assistant turn when the completion resolves; nothing
// ever edits or removes a recorded turn.
type ConversationService interface {
	List(ctx context.Context, sessionID string) ([]dto.TurnResponse, error)
	Submit(ctx context.Context, sessionID string, payload dto.SubmitRequest) (dto.ExchangeResponse, error)
	CancelPending(ctx context.Context, sessionID string) error
}

type conversationService struct {
	sessions          repository.SessionRepository
	turns             repository.TurnRepository
	attachments       repository.AttachmentRepository
	completer         ai.Completer
	runtime           *Runtime
	broker            *EventBroker
	cache             *SnapshotCache
	validator         *validator.Validate
	sanitizer         *bluemonday.Policy
	completionTimeout time.Duration
	logger            zerolog.Logger
}

// NewConversationService builds a new conversation service.
func NewConversationService(
	sessions repository.SessionRepository,
	turns repository.TurnRepository,
	attachments repository.AttachmentRepository,
	completer ai.Completer,
	runtime *Runtime,
	broker *EventBroker,
	cache *SnapshotCache,
	validate *validator.Validate,
	completionTimeout time.Duration,
	logger zerolog.Logger,
) ConversationService {
	return &conversationService{
		sessions:          sessions,
		turns:             turns,
		attachments:       attachments,
		completer:         completer,
		runtime:           runtime,
		broker:            broker,
		cache:             cache,
		validator:         validate,
		sanitizer:         bluemonday.StrictPolicy(),
		completionTimeout: completionTimeout,
		logger:            logger.With().Str("component", "conversation_service").Logger(),
	}
}

func (s *conversationService) List(ctx context.Context, sessionID string) ([]dto.TurnResponse, error) {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}

		return nil, err
	}

	turns, err := s.turns.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return dto.NewTurnResponseSlice(turns), nil
}

// Submit records the user turn, requests a completion with the session's
// current settings and included knowledge, and records the assistant turn.
// A submit while another completion is in flight is rejected with
// ErrCompletionPending. The user turn survives even when the completion
// fails or is cancelled.
func (s *conversationService) Submit(ctx context.Context, sessionID string, payload dto.SubmitRequest) (dto.ExchangeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ExchangeResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return dto.ExchangeResponse{}, ErrEmptyMessage
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExchangeResponse{}, ErrSessionNotFound
		}

		return dto.ExchangeResponse{}, err
	}

	completionCtx, cancel := context.WithTimeout(ctx, s.completionTimeout)
	defer cancel()

	if err := s.runtime.BeginCompletion(sessionID, cancel); err != nil {
		return dto.ExchangeResponse{}, err
	}
	defer s.runtime.EndCompletion(sessionID)

	userTurn := models.ConversationTurn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      models.RoleUser,
		Content:   content,
	}
	if err := s.turns.Append(ctx, &userTurn); err != nil {
		return dto.ExchangeResponse{}, err
	}

	s.cache.Invalidate(ctx, sessionID)
	s.broker.Publish(Event{
		SessionID: sessionID,
		Type:      EventTurnAppended,
		Payload:   dto.NewTurnResponse(userTurn),
	})

	input, err := s.buildCompletionInput(ctx, session)
	if err != nil {
		return dto.ExchangeResponse{}, err
	}

	reply, err := s.completer.Complete(completionCtx, input)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(completionCtx.Err(), context.Canceled) {
			s.logger.Info().Str("session_id", sessionID).Msg("completion cancelled by user")
			return dto.ExchangeResponse{}, ErrCompletionCancelled
		}

		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("completion failed")
		return dto.ExchangeResponse{}, fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}

	assistantTurn := models.ConversationTurn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      models.RoleAssistant,
		Content:   reply,
	}
	if err := s.turns.Append(ctx, &assistantTurn); err != nil {
		return dto.ExchangeResponse{}, err
	}

	s.cache.Invalidate(ctx, sessionID)
	s.broker.Publish(Event{
		SessionID: sessionID,
		Type:      EventTurnAppended,
		Payload:   dto.NewTurnResponse(assistantTurn),
	})

	return dto.ExchangeResponse{
		UserTurn:      dto.NewTurnResponse(userTurn),
		AssistantTurn: dto.NewTurnResponse(assistantTurn),
	}, nil
}

// buildCompletionInput assembles the conversation history and the extracted
// content of every included attachment. Attachments still awaiting
// extraction contribute nothing.
func (s *conversationService) buildCompletionInput(ctx context.Context, session models.Session) (ai.CompletionInput, error) {
	turns, err := s.turns.ListBySession(ctx, session.ID)
	if err != nil {
		return ai.CompletionInput{}, err
	}

	messages := make([]ai.Message, 0, len(turns))
	for _, turn := range turns {
		messages = append(messages, ai.Message{Role: turn.Role, Content: turn.Content})
	}

	attachments, err := s.attachments.ListBySession(ctx, session.ID)
	if err != nil {
		return ai.CompletionInput{}, err
	}

	var knowledge []string
	for _, attachment := range attachments {
		if attachment.IsIncluded && attachment.Extracted() {
			knowledge = append(knowledge, *attachment.ExtractedContent)
		}
	}

	return ai.CompletionInput{
		Turns: messages,
		Params: ai.GenerationParams{
			Model:            session.Settings.Model,
			MaxTokens:        session.Settings.MaxOutputTokens,
			Temperature:      session.Settings.Temperature,
			TopP:             session.Settings.TopP,
			FrequencyPenalty: session.Settings.FrequencyPenalty,
			PresencePenalty:  session.Settings.PresencePenalty,
		},
		Knowledge: knowledge,
	}, nil
}

// CancelPending aborts the in-flight completion for the session. Returns
// ErrNoPendingCompletion when the session is idle.
func (s *conversationService) CancelPending(ctx context.Context, sessionID string) error {
	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}

		return err
	}

	if !s.runtime.CancelCompletion(sessionID) {
		return ErrNoPendingCompletion
	}

	return nil
}
