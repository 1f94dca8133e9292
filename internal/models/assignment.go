package models

import (
	"time"

	"gorm.io/datatypes"
)

// Assignment is the teacher-authored task the judge grades against. One row
// per session; edits are committed wholesale by the teacher (the UI stages
// drafts locally and only saved values reach the API).
type Assignment struct {
	SessionID    string                      `gorm:"primaryKey;size:36" json:"session_id"`
	Title        string                      `gorm:"size:255;not null" json:"title"`
	Instructions string                      `gorm:"type:text" json:"instructions"`
	Rubric       datatypes.JSONSlice[string] `gorm:"type:json" json:"rubric"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// DefaultAssignment seeds every new session with the sample task shipped in
// the playground.
func DefaultAssignment(sessionID string) Assignment {
	return Assignment{
		SessionID: sessionID,
		Title:     "Pirate GPT Challenge",
		Instructions: `Your task is to create a prompt that makes GPT respond like a pirate in all its communications.

Requirements:
- The AI should use pirate language and terminology
- Include "Arr!" and other pirate expressions
- Maintain helpful and accurate responses
- The pirate personality should be consistent throughout the conversation

Bonus points for creativity and authenticity!`,
		Rubric: datatypes.NewJSONSlice([]string{
			"Prompt clarity and specificity",
			"Successful pirate character adoption",
			"Maintained helpfulness",
			"Creative approach",
		}),
	}
}
