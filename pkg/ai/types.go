package ai

import "context"

// Message is one conversation turn handed to an engine.
type Message struct {
	Role    string
	Content string
}

// GenerationParams carries the playground's model settings into a completion
// request.
type GenerationParams struct {
	Model            string
	MaxTokens        int
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
}

// CompletionInput contains everything needed to produce the next assistant
// turn: the prior conversation (ending with the new user message) and the
// extracted content of every included knowledge attachment.
type CompletionInput struct {
	Turns     []Message
	Params    GenerationParams
	Knowledge []string
}

// Completer produces the next assistant message for a conversation.
type Completer interface {
	Complete(ctx context.Context, input CompletionInput) (string, error)
}

// JudgeInput contains the artefacts the judge grades: the full conversation
// and the assignment it is measured against.
type JudgeInput struct {
	Turns        []Message
	Title        string
	Instructions string
	Rubric       []string
}

// JudgeResult is the structured critique returned by the judge.
type JudgeResult struct {
	Score        int      `json:"score"`
	Explanation  string   `json:"explanation"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Judge scores a conversation against a teacher-authored assignment.
type Judge interface {
	Evaluate(ctx context.Context, input JudgeInput) (JudgeResult, error)
}
