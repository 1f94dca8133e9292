package dto

import "github.com/SoftwareSushi/gpt-academy/internal/models"

// SettingsUpdateRequest is a partial update: only named fields change, every
// other parameter keeps its prior value.
type SettingsUpdateRequest struct {
	Model            *string  `json:"model" validate:"omitempty,oneof=gpt-3.5-turbo gpt-4 gpt-4-turbo"`
	MaxOutputTokens  *int     `json:"max_output_tokens"`
	Temperature      *float64 `json:"temperature"`
	TopP             *float64 `json:"top_p"`
	FrequencyPenalty *float64 `json:"frequency_penalty"`
	PresencePenalty  *float64 `json:"presence_penalty"`
}

// ApplyTo merges the named fields into the current settings and returns the
// merged copy. Numeric domains are enforced by the caller via Clamp.
func (r SettingsUpdateRequest) ApplyTo(current models.ModelSettings) models.ModelSettings {
	if r.Model != nil {
		current.Model = *r.Model
	}
	if r.MaxOutputTokens != nil {
		current.MaxOutputTokens = *r.MaxOutputTokens
	}
	if r.Temperature != nil {
		current.Temperature = *r.Temperature
	}
	if r.TopP != nil {
		current.TopP = *r.TopP
	}
	if r.FrequencyPenalty != nil {
		current.FrequencyPenalty = *r.FrequencyPenalty
	}
	if r.PresencePenalty != nil {
		current.PresencePenalty = *r.PresencePenalty
	}
	return current
}

// SettingsResponse is the serialized representation of model settings.
type SettingsResponse struct {
	Model            string  `json:"model"`
	MaxOutputTokens  int     `json:"max_output_tokens"`
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"top_p"`
	FrequencyPenalty float64 `json:"frequency_penalty"`
	PresencePenalty  float64 `json:"presence_penalty"`
}

// NewSettingsResponse converts a model into a DTO.
func NewSettingsResponse(model models.ModelSettings) SettingsResponse {
	return SettingsResponse{
		Model:            model.Model,
		MaxOutputTokens:  model.MaxOutputTokens,
		Temperature:      model.Temperature,
		TopP:             model.TopP,
		FrequencyPenalty: model.FrequencyPenalty,
		PresencePenalty:  model.PresencePenalty,
	}
}
