package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateJudgePayloadAcceptsIntegerScore(t *testing.T) {
	err := validateJudgePayload(`{
		"score": 7,
		"explanation": "solid",
		"strengths": ["clarity"],
		"improvements": []
	}`)
	require.NoError(t, err)
}

func TestValidateJudgePayloadRejectsFractionalScore(t *testing.T) {
	err := validateJudgePayload(`{"score": 7.5, "explanation": "x", "strengths": [], "improvements": []}`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed schema validation")
}

func TestValidateJudgePayloadRejectsInvalidJSON(t *testing.T) {
	err := validateJudgePayload(`{"score":`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not valid json")
}
