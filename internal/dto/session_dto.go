package dto

import (
	"time"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// SessionResponse is the serialized representation of a playground session.
type SessionResponse struct {
	ID                  string           `json:"id"`
	Settings            SettingsResponse `json:"settings"`
	LeftPanelCollapsed  bool             `json:"left_panel_collapsed"`
	RightPanelCollapsed bool             `json:"right_panel_collapsed"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// NewSessionResponse converts a model into a DTO.
func NewSessionResponse(model models.Session) SessionResponse {
	return SessionResponse{
		ID:                  model.ID,
		Settings:            NewSettingsResponse(model.Settings),
		LeftPanelCollapsed:  model.LeftPanelCollapsed,
		RightPanelCollapsed: model.RightPanelCollapsed,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

// SessionSnapshot aggregates every store belonging to one session. Served by
// the snapshot endpoint and cached in Redis until the next mutation.
type SessionSnapshot struct {
	Session     SessionResponse      `json:"session"`
	Attachments []AttachmentResponse `json:"attachments"`
	Turns       []TurnResponse       `json:"turns"`
	Assignment  AssignmentResponse   `json:"assignment"`
	Feedback    *FeedbackResponse    `json:"feedback,omitempty"`
}

// PanelToggleResponse reports both pane flags after a toggle.
type PanelToggleResponse struct {
	LeftPanelCollapsed  bool `json:"left_panel_collapsed"`
	RightPanelCollapsed bool `json:"right_panel_collapsed"`
}

// ThemeResponse carries the persisted theme preference for a client.
type ThemeResponse struct {
	Theme string `json:"theme"`
}
