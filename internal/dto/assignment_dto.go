package dto

import (
	"time"

	"github.com/SoftwareSushi/gpt-academy/internal/models"
)

// AssignmentCommitRequest merges saved edits into the committed assignment.
// Only title and instructions are editable through this path; the rubric is
// fixed for the session. Absent fields keep their committed value, which is
// how a cancelled edit never disturbs the record.
type AssignmentCommitRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1"`
	Instructions *string `json:"instructions"`
}

// AssignmentResponse is the serialized representation of the committed
// assignment.
type AssignmentResponse struct {
	Title        string    `json:"title"`
	Instructions string    `json:"instructions"`
	Rubric       []string  `json:"rubric"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		Title:        model.Title,
		Instructions: model.Instructions,
		Rubric:       model.Rubric,
		UpdatedAt:    model.UpdatedAt,
	}
}
