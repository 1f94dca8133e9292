package models

import "time"

// Model variants the playground can route completions to.
const (
	ModelGPT35Turbo = "gpt-3.5-turbo"
	ModelGPT4       = "gpt-4"
	ModelGPT4Turbo  = "gpt-4-turbo"
)

// Domain bounds for generation parameters. Values outside these ranges are
// clamped at the store boundary before they reach the completion engine.
const (
	MaxOutputTokensFloor = 1
	MaxOutputTokensCeil  = 4096
	TemperatureFloor     = 0.0
	TemperatureCeil      = 2.0
	TopPFloor            = 0.0
	TopPCeil             = 1.0
	PenaltyFloor         = -2.0
	PenaltyCeil          = 2.0
)

// ModelSettings holds the generation parameters applied to the next
// completion request. Embedded in Session so partial updates merge into a
// single row.
type ModelSettings struct {
	Model            string  `gorm:"size:64;not null" json:"model"`
	MaxOutputTokens  int     `gorm:"not null" json:"max_output_tokens"`
	Temperature      float64 `gorm:"not null" json:"temperature"`
	TopP             float64 `gorm:"not null" json:"top_p"`
	FrequencyPenalty float64 `gorm:"not null" json:"frequency_penalty"`
	PresencePenalty  float64 `gorm:"not null" json:"presence_penalty"`
}

// DefaultModelSettings returns the parameters every new session starts with.
func DefaultModelSettings() ModelSettings {
	return ModelSettings{
		Model:            ModelGPT4,
		MaxOutputTokens:  2048,
		Temperature:      0.7,
		TopP:             1.0,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
	}
}

// Clamp forces every numeric field back into its documented domain and
// returns the adjusted copy.
func (s ModelSettings) Clamp() ModelSettings {
	if s.MaxOutputTokens < MaxOutputTokensFloor {
		s.MaxOutputTokens = MaxOutputTokensFloor
	}
	if s.MaxOutputTokens > MaxOutputTokensCeil {
		s.MaxOutputTokens = MaxOutputTokensCeil
	}
	s.Temperature = clampFloat(s.Temperature, TemperatureFloor, TemperatureCeil)
	s.TopP = clampFloat(s.TopP, TopPFloor, TopPCeil)
	s.FrequencyPenalty = clampFloat(s.FrequencyPenalty, PenaltyFloor, PenaltyCeil)
	s.PresencePenalty = clampFloat(s.PresencePenalty, PenaltyFloor, PenaltyCeil)
	return s
}

func clampFloat(value, floor, ceil float64) float64 {
	if value < floor {
		return floor
	}
	if value > ceil {
		return ceil
	}
	return value
}

// Session is one playground workspace: its generation settings and the
// visibility of the two side panes. Attachments, turns, assignment and
// feedback hang off it by SessionID.
type Session struct {
	ID                  string        `gorm:"primaryKey;size:36" json:"id"`
	Settings            ModelSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
	LeftPanelCollapsed  bool          `gorm:"not null;default:false" json:"left_panel_collapsed"`
	RightPanelCollapsed bool          `gorm:"not null;default:false" json:"right_panel_collapsed"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}
