package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/models"
	"github.com/SoftwareSushi/gpt-academy/internal/repository"
)

// Panel identifiers accepted by TogglePanel.
const (
	PanelLeft  = "left"
	PanelRight = "right"
)

// ErrUnknownPanel indicates the panel identifier is neither left nor right.
var ErrUnknownPanel = errors.New("unknown panel")

// SessionService exposes playground session use cases: lifecycle, the
// aggregated snapshot, and panel visibility.
type SessionService interface {
	Create(ctx context.Context) (dto.SessionResponse, error)
	Get(ctx context.Context, id string) (dto.SessionResponse, error)
	Snapshot(ctx context.Context, id string) (dto.SessionSnapshot, error)
	Panels(ctx context.Context, id string) (dto.PanelToggleResponse, error)
	TogglePanel(ctx context.Context, id, panel string) (dto.PanelToggleResponse, error)
}

type sessionService struct {
	sessions    repository.SessionRepository
	attachments repository.AttachmentRepository
	turns       repository.TurnRepository
	assignments repository.AssignmentRepository
	feedback    repository.FeedbackRepository
	cache       *SnapshotCache
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSessionService builds a new session service.
func NewSessionService(
	sessions repository.SessionRepository,
	attachments repository.AttachmentRepository,
	turns repository.TurnRepository,
	assignments repository.AssignmentRepository,
	feedback repository.FeedbackRepository,
	cache *SnapshotCache,
	logger zerolog.Logger,
) SessionService {
	return &sessionService{
		sessions:    sessions,
		attachments: attachments,
		turns:       turns,
		assignments: assignments,
		feedback:    feedback,
		cache:       cache,
		logger:      logger.With().Str("component", "session_service").Logger(),
		now:         time.Now,
	}
}

// Create provisions a new session with default model settings, expanded
// panels, and the sample assignment.
func (s *sessionService) Create(ctx context.Context) (dto.SessionResponse, error) {
	session := models.Session{
		ID:       uuid.NewString(),
		Settings: models.DefaultModelSettings(),
	}

	if err := s.sessions.Create(ctx, &session); err != nil {
		return dto.SessionResponse{}, err
	}

	assignment := models.DefaultAssignment(session.ID)
	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.SessionResponse{}, err
	}

	s.logger.Info().Str("session_id", session.ID).Msg("session created")

	return dto.NewSessionResponse(session), nil
}

func (s *sessionService) Get(ctx context.Context, id string) (dto.SessionResponse, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionResponse{}, ErrSessionNotFound
		}

		return dto.SessionResponse{}, err
	}

	return dto.NewSessionResponse(session), nil
}

// Snapshot assembles the full session state in one response. Served from
// the Redis cache when a fresh copy exists.
func (s *sessionService) Snapshot(ctx context.Context, id string) (dto.SessionSnapshot, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SessionSnapshot{}, ErrSessionNotFound
		}

		return dto.SessionSnapshot{}, err
	}

	attachments, err := s.attachments.ListBySession(ctx, id)
	if err != nil {
		return dto.SessionSnapshot{}, err
	}

	turns, err := s.turns.ListBySession(ctx, id)
	if err != nil {
		return dto.SessionSnapshot{}, err
	}

	assignment, err := s.assignments.GetBySession(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.SessionSnapshot{}, err
	}

	snapshot := dto.SessionSnapshot{
		Session:     dto.NewSessionResponse(session),
		Attachments: dto.NewAttachmentResponseSlice(attachments),
		Turns:       dto.NewTurnResponseSlice(turns),
		Assignment:  dto.NewAssignmentResponse(assignment),
	}

	verdict, err := s.feedback.GetBySession(ctx, id)
	switch {
	case err == nil:
		response := dto.NewFeedbackResponse(verdict)
		snapshot.Feedback = &response
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return dto.SessionSnapshot{}, err
	}

	s.cache.Set(ctx, id, snapshot)

	return snapshot, nil
}

// Panels reports the current collapsed flags of both side panes.
func (s *sessionService) Panels(ctx context.Context, id string) (dto.PanelToggleResponse, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PanelToggleResponse{}, ErrSessionNotFound
		}

		return dto.PanelToggleResponse{}, err
	}

	return dto.PanelToggleResponse{
		LeftPanelCollapsed:  session.LeftPanelCollapsed,
		RightPanelCollapsed: session.RightPanelCollapsed,
	}, nil
}

// TogglePanel flips the collapsed flag of one side pane and reports both.
func (s *sessionService) TogglePanel(ctx context.Context, id, panel string) (dto.PanelToggleResponse, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PanelToggleResponse{}, ErrSessionNotFound
		}

		return dto.PanelToggleResponse{}, err
	}

	switch panel {
	case PanelLeft:
		session.LeftPanelCollapsed = !session.LeftPanelCollapsed
	case PanelRight:
		session.RightPanelCollapsed = !session.RightPanelCollapsed
	default:
		return dto.PanelToggleResponse{}, ErrUnknownPanel
	}

	session.UpdatedAt = s.now()
	if err := s.sessions.Update(ctx, &session); err != nil {
		return dto.PanelToggleResponse{}, err
	}

	s.cache.Invalidate(ctx, id)

	return dto.PanelToggleResponse{
		LeftPanelCollapsed:  session.LeftPanelCollapsed,
		RightPanelCollapsed: session.RightPanelCollapsed,
	}, nil
}
