package models

import (
	"time"

	"gorm.io/datatypes"
)

// Feedback is the single current judge verdict for a session. Each feedback
// request replaces the row wholesale; no history is kept.
type Feedback struct {
	SessionID    string                      `gorm:"primaryKey;size:36" json:"session_id"`
	Score        int                         `gorm:"not null" json:"score"`
	Explanation  string                      `gorm:"type:text" json:"explanation"`
	Strengths    datatypes.JSONSlice[string] `gorm:"type:json" json:"strengths"`
	Improvements datatypes.JSONSlice[string] `gorm:"type:json" json:"improvements"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}
