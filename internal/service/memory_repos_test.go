package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// noCache returns a disabled snapshot cache; a nil Redis client makes every
// cache operation a no-op.
func noCache() *SnapshotCache {
	return NewSnapshotCache(nil, time.Minute, testLogger())
}

type memorySessionRepo struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]models.Session)}
}

func (m *memorySessionRepo) Create(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session.CreatedAt = time.Now()
	session.UpdatedAt = session.CreatedAt
	m.sessions[session.ID] = *session
	return nil
}

func (m *memorySessionRepo) GetByID(_ context.Context, id string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	if !ok {
		return models.Session{}, gorm.ErrRecordNotFound
	}
	return session, nil
}

func (m *memorySessionRepo) Update(_ context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[session.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.sessions[session.ID] = *session
	return nil
}

type memoryAttachmentRepo struct {
	mu          sync.Mutex
	attachments map[string]models.Attachment
}

func newMemoryAttachmentRepo() *memoryAttachmentRepo {
	return &memoryAttachmentRepo{attachments: make(map[string]models.Attachment)}
}

func (m *memoryAttachmentRepo) Create(_ context.Context, attachment *models.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attachments[attachment.ID] = *attachment
	return nil
}

func (m *memoryAttachmentRepo) GetByID(_ context.Context, id string) (models.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	attachment, ok := m.attachments[id]
	if !ok {
		return models.Attachment{}, gorm.ErrRecordNotFound
	}
	return attachment, nil
}

func (m *memoryAttachmentRepo) ListBySession(_ context.Context, sessionID string) ([]models.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	results := make([]models.Attachment, 0)
	for _, attachment := range m.attachments {
		if attachment.SessionID == sessionID {
			results = append(results, attachment)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Position < results[j].Position })
	return results, nil
}

func (m *memoryAttachmentRepo) NextPosition(_ context.Context, sessionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := 0
	for _, attachment := range m.attachments {
		if attachment.SessionID == sessionID && attachment.Position >= next {
			next = attachment.Position + 1
		}
	}
	return next, nil
}

func (m *memoryAttachmentRepo) SetExtractedContent(_ context.Context, id, content string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	attachment, ok := m.attachments[id]
	if !ok {
		return false, nil
	}
	attachment.ExtractedContent = &content
	m.attachments[id] = attachment
	return true, nil
}

func (m *memoryAttachmentRepo) SetInclusion(_ context.Context, id string, included bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	attachment, ok := m.attachments[id]
	if !ok {
		return false, nil
	}
	attachment.IsIncluded = included
	m.attachments[id] = attachment
	return true, nil
}

func (m *memoryAttachmentRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attachments, id)
	return nil
}

type memoryTurnRepo struct {
	mu    sync.Mutex
	turns []models.ConversationTurn
	seq   uint64
}

func newMemoryTurnRepo() *memoryTurnRepo {
	return &memoryTurnRepo{}
}

func (m *memoryTurnRepo) Append(_ context.Context, turn *models.ConversationTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	turn.Seq = m.seq
	turn.CreatedAt = time.Now()
	m.turns = append(m.turns, *turn)
	return nil
}

func (m *memoryTurnRepo) ListBySession(_ context.Context, sessionID string) ([]models.ConversationTurn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	results := make([]models.ConversationTurn, 0)
	for _, turn := range m.turns {
		if turn.SessionID == sessionID {
			results = append(results, turn)
		}
	}
	return results, nil
}

type memoryAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]models.Assignment
}

func newMemoryAssignmentRepo() *memoryAssignmentRepo {
	return &memoryAssignmentRepo{assignments: make(map[string]models.Assignment)}
}

func (m *memoryAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	assignment.CreatedAt = time.Now()
	assignment.UpdatedAt = assignment.CreatedAt
	m.assignments[assignment.SessionID] = *assignment
	return nil
}

func (m *memoryAssignmentRepo) GetBySession(_ context.Context, sessionID string) (models.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	assignment, ok := m.assignments[sessionID]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *memoryAssignmentRepo) Update(_ context.Context, assignment *models.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assignments[assignment.SessionID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.assignments[assignment.SessionID] = *assignment
	return nil
}

type memoryFeedbackRepo struct {
	mu       sync.Mutex
	verdicts map[string]models.Feedback
}

func newMemoryFeedbackRepo() *memoryFeedbackRepo {
	return &memoryFeedbackRepo{verdicts: make(map[string]models.Feedback)}
}

func (m *memoryFeedbackRepo) Replace(_ context.Context, feedback *models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	feedback.UpdatedAt = time.Now()
	m.verdicts[feedback.SessionID] = *feedback
	return nil
}

func (m *memoryFeedbackRepo) GetBySession(_ context.Context, sessionID string) (models.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	verdict, ok := m.verdicts[sessionID]
	if !ok {
		return models.Feedback{}, gorm.ErrRecordNotFound
	}
	return verdict, nil
}
