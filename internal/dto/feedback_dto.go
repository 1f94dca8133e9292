package dto

import (
	"time"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// FeedbackResponse is the serialized representation of the current judge
// verdict.
type FeedbackResponse struct {
	Score        int       `json:"score"`
	Explanation  string    `json:"explanation"`
	Strengths    []string  `json:"strengths"`
	Improvements []string  `json:"improvements"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewFeedbackResponse converts a model into a DTO.
func NewFeedbackResponse(model models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		Score:        model.Score,
		Explanation:  model.Explanation,
		Strengths:    model.Strengths,
		Improvements: model.Improvements,
		CreatedAt:    model.UpdatedAt,
	}
}
