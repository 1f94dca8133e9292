package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseJudgeResponse(t *testing.T) {
	payload := `{
		"score": 8,
		"explanation": "Clear and specific instructions.",
		"strengths": ["Clear persona definition"],
		"improvements": ["Add edge case handling"]
	}`

	result, err := ParseJudgeResponse(payload)
	require.NoError(t, err)
	require.Equal(t, 8, result.Score)
	require.Equal(t, "Clear and specific instructions.", result.Explanation)
	require.Len(t, result.Strengths, 1)
	require.Len(t, result.Improvements, 1)
}

func TestParseJudgeResponseClampsScore(t *testing.T) {
	result, err := ParseJudgeResponse(`{"score": 14, "explanation": "x", "strengths": [], "improvements": []}`)
	require.NoError(t, err)
	require.Equal(t, 10, result.Score)

	result, err = ParseJudgeResponse(`{"score": -3, "explanation": "x", "strengths": [], "improvements": []}`)
	require.NoError(t, err)
	require.Equal(t, 0, result.Score)
}

func TestParseJudgeResponseRejectsMalformedPayload(t *testing.T) {
	cases := map[string]string{
		"not json":        `grade: A+`,
		"missing fields":  `{"score": 5}`,
		"score as string": `{"score": "five", "explanation": "x", "strengths": [], "improvements": []}`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJudgeResponse(payload)
			require.Error(t, err)
		})
	}
}

func TestBuildJudgePromptIncludesRubric(t *testing.T) {
	prompt := buildJudgePrompt(JudgeInput{
		Title:        "Pirate GPT Challenge",
		Instructions: "Make the model talk like a pirate.",
		Rubric:       []string{"Prompt clarity and specificity"},
		Turns: []Message{
			{Role: "user", Content: "hello"},
			{Role: "assistant", Content: "hi"},
		},
	})

	require.Contains(t, prompt, "Pirate GPT Challenge")
	require.Contains(t, prompt, "- Prompt clarity and specificity")
	require.Contains(t, prompt, "[user] hello")
	require.Contains(t, prompt, "[assistant] hi")
}

func TestKnowledgeSystemPromptEmptyWhenNoDocuments(t *testing.T) {
	require.Empty(t, knowledgeSystemPrompt(nil))
	require.Contains(t, knowledgeSystemPrompt([]string{"doc"}), "Document 1")
}
