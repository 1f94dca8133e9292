package dto

import (
	"time"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// SubmitRequest carries a new user message into the conversation.
type SubmitRequest struct {
	Content string `json:"content" validate:"required"`
}

// TurnResponse is the serialized representation of one conversation turn.
type TurnResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTurnResponse converts a model into a DTO.
func NewTurnResponse(model models.ConversationTurn) TurnResponse {
	return TurnResponse{
		ID:        model.ID,
		Role:      model.Role,
		Content:   model.Content,
		CreatedAt: model.CreatedAt,
	}
}

// NewTurnResponseSlice converts a slice of models into DTOs.
func NewTurnResponseSlice(turns []models.ConversationTurn) []TurnResponse {
	responses := make([]TurnResponse, 0, len(turns))
	for _, turn := range turns {
		responses = append(responses, NewTurnResponse(turn))
	}

	return responses
}

// ExchangeResponse is returned from a submit: the user turn that was
// appended synchronously plus the assistant turn the completion produced.
type ExchangeResponse struct {
	UserTurn      TurnResponse `json:"user_turn"`
	AssistantTurn TurnResponse `json:"assistant_turn"`
}
