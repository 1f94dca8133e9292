package dto

import (
	"time"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// AttachmentResponse is the serialized representation of a knowledge
// attachment.
type AttachmentResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	MimeType         string    `json:"mime_type"`
	SizeBytes        int64     `json:"size_bytes"`
	FileURL          string    `json:"file_url,omitempty"`
	ExtractedContent *string   `json:"extracted_content,omitempty"`
	IsIncluded       bool      `json:"is_included"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// NewAttachmentResponse converts a model into a DTO.
func NewAttachmentResponse(model models.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:               model.ID,
		Name:             model.Name,
		MimeType:         model.MimeType,
		SizeBytes:        model.SizeBytes,
		FileURL:          model.FileURL,
		ExtractedContent: model.ExtractedContent,
		IsIncluded:       model.IsIncluded,
		UploadedAt:       model.UploadedAt,
	}
}

// NewAttachmentResponseSlice converts a slice of models into DTOs.
func NewAttachmentResponseSlice(attachments []models.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		responses = append(responses, NewAttachmentResponse(attachment))
	}

	return responses
}

// InclusionToggleResponse reports the flag after a toggle.
type InclusionToggleResponse struct {
	ID         string `json:"id"`
	IsIncluded bool   `json:"is_included"`
}
