package models

import "time"

// Attachment is a user-supplied reference file tracked for optional
// inclusion in completion requests. ExtractedContent stays nil until the
// extraction job resolves; the raw bytes may additionally be parked in blob
// storage (FileURL).
type Attachment struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID        string    `gorm:"size:36;index;not null" json:"session_id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	MimeType         string    `gorm:"size:128" json:"mime_type"`
	SizeBytes        int64     `gorm:"not null" json:"size_bytes"`
	FileURL          string    `gorm:"size:512" json:"file_url"`
	ExtractedContent *string   `gorm:"type:text" json:"extracted_content,omitempty"`
	IsIncluded       bool      `gorm:"not null;default:true" json:"is_included"`
	Position         int       `gorm:"not null" json:"position"`
	UploadedAt       time.Time `gorm:"not null" json:"uploaded_at"`
}

// Extracted reports whether the extraction service has resolved for this
// attachment.
func (a Attachment) Extracted() bool {
	return a.ExtractedContent != nil
}
