package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/models"
	"github.com/SoftwareSushi/gpt-academy/internal/observability"
	"github.com/SoftwareSushi/gpt-academy/internal/repository"
	"github.com/SoftwareSushi/gpt-academy/pkg/extract"
)

// FileUploader abstracts uploading binary data and returning a URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// AttachmentService manages the knowledge attachments of a session.
type AttachmentService interface {
	Add(ctx context.Context, sessionID, name string, data []byte) (dto.AttachmentResponse, error)
	List(ctx context.Context, sessionID string, includedOnly bool) ([]dto.AttachmentResponse, error)
	ToggleInclusion(ctx context.Context, sessionID, attachmentID string) (dto.InclusionToggleResponse, error)
	Remove(ctx context.Context, sessionID, attachmentID string) error
}

type attachmentService struct {
	sessions          repository.SessionRepository
	attachments       repository.AttachmentRepository
	extractor         extract.Extractor
	uploader          FileUploader
	broker            *EventBroker
	cache             *SnapshotCache
	maxSizeBytes      int64
	extractionTimeout time.Duration
	logger            zerolog.Logger
	now               func() time.Time
	// spawn runs the extraction job. Tests swap it for a synchronous
	// runner; production uses go func.
	spawn func(func())
}

// NewAttachmentService builds a new attachment service. uploader may be nil,
// in which case raw bytes are not parked in blob storage.
func NewAttachmentService(
	sessions repository.SessionRepository,
	attachments repository.AttachmentRepository,
	extractor extract.Extractor,
	uploader FileUploader,
	broker *EventBroker,
	cache *SnapshotCache,
	maxSizeMB int,
	extractionTimeout time.Duration,
	logger zerolog.Logger,
) AttachmentService {
	return &attachmentService{
		sessions:          sessions,
		attachments:       attachments,
		extractor:         extractor,
		uploader:          uploader,
		broker:            broker,
		cache:             cache,
		maxSizeBytes:      int64(maxSizeMB) * 1024 * 1024,
		extractionTimeout: extractionTimeout,
		logger:            logger.With().Str("component", "attachment_service").Logger(),
		now:               time.Now,
		spawn:             func(job func()) { go job() },
	}
}

// Add registers the attachment immediately with no extracted content, then
// resolves extraction in the background. The attachment is eligible for
// inclusion from the moment it is created.
func (s *attachmentService) Add(ctx context.Context, sessionID, name string, data []byte) (dto.AttachmentResponse, error) {
	if int64(len(data)) > s.maxSizeBytes {
		return dto.AttachmentResponse{}, ErrAttachmentTooLarge
	}

	if _, err := s.sessions.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AttachmentResponse{}, ErrSessionNotFound
		}

		return dto.AttachmentResponse{}, err
	}

	position, err := s.attachments.NextPosition(ctx, sessionID)
	if err != nil {
		return dto.AttachmentResponse{}, err
	}

	attachment := models.Attachment{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Name:       name,
		MimeType:   extract.DetectMime(data),
		SizeBytes:  int64(len(data)),
		IsIncluded: true,
		Position:   position,
		UploadedAt: s.now(),
	}

	if s.uploader != nil {
		url, err := s.uploader.Upload(ctx, name, bytes.NewReader(data))
		if err != nil {
			s.logger.Warn().Err(err).Str("name", name).Msg("blob upload failed, keeping attachment without file url")
		} else {
			attachment.FileURL = url
		}
	}

	if err := s.attachments.Create(ctx, &attachment); err != nil {
		return dto.AttachmentResponse{}, err
	}

	s.cache.Invalidate(ctx, sessionID)
	s.spawn(func() { s.runExtraction(attachment.ID, sessionID, name, data) })

	return dto.NewAttachmentResponse(attachment), nil
}

// runExtraction resolves the attachment's text in the background. A delete
// racing this job makes the content write a no-op.
func (s *attachmentService) runExtraction(attachmentID, sessionID, name string, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), s.extractionTimeout)
	defer cancel()

	start := time.Now()
	content, err := s.extractor.Extract(ctx, name, data)
	observability.ExtractionDuration().Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ExtractionFailures().Inc()
		s.logger.Warn().Err(err).Str("attachment_id", attachmentID).Msg("extraction failed")
		return
	}

	applied, err := s.attachments.SetExtractedContent(ctx, attachmentID, content)
	if err != nil {
		s.logger.Error().Err(err).Str("attachment_id", attachmentID).Msg("failed to store extracted content")
		return
	}
	if !applied {
		s.logger.Debug().Str("attachment_id", attachmentID).Msg("attachment removed before extraction resolved")
		return
	}

	s.cache.Invalidate(ctx, sessionID)
	s.broker.Publish(Event{
		SessionID: sessionID,
		Type:      EventExtractionResolved,
		Payload:   dto.InclusionToggleResponse{ID: attachmentID, IsIncluded: true},
	})
}

// List returns the session's attachments in upload order. includedOnly
// narrows the list to attachments flagged for completion inclusion.
func (s *attachmentService) List(ctx context.Context, sessionID string, includedOnly bool) ([]dto.AttachmentResponse, error) {
	attachments, err := s.attachments.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if includedOnly {
		filtered := attachments[:0]
		for _, attachment := range attachments {
			if attachment.IsIncluded {
				filtered = append(filtered, attachment)
			}
		}
		attachments = filtered
	}

	return dto.NewAttachmentResponseSlice(attachments), nil
}

// ToggleInclusion flips whether the attachment's content is sent with
// completion requests. Toggling an attachment that no longer exists is a
// no-op, same as Remove.
func (s *attachmentService) ToggleInclusion(ctx context.Context, sessionID, attachmentID string) (dto.InclusionToggleResponse, error) {
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InclusionToggleResponse{ID: attachmentID}, nil
		}

		return dto.InclusionToggleResponse{}, err
	}
	if attachment.SessionID != sessionID {
		return dto.InclusionToggleResponse{ID: attachmentID}, nil
	}

	included := !attachment.IsIncluded
	if _, err := s.attachments.SetInclusion(ctx, attachmentID, included); err != nil {
		return dto.InclusionToggleResponse{}, err
	}

	s.cache.Invalidate(ctx, sessionID)

	return dto.InclusionToggleResponse{ID: attachmentID, IsIncluded: included}, nil
}

// Remove deletes the attachment. Removing an attachment that is already gone
// succeeds, so a delete racing an extraction job or a double click settles
// quietly.
func (s *attachmentService) Remove(ctx context.Context, sessionID, attachmentID string) error {
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	}
	if attachment.SessionID != sessionID {
		return nil
	}

	if err := s.attachments.Delete(ctx, attachmentID); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, sessionID)

	return nil
}
