package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// judgeSchema pins down the judge's wire contract before the payload is
// trusted. The score range is intentionally loose here (clamping happens
// after decode); the shape is not.
const judgeSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["score", "explanation", "strengths", "improvements"],
	"properties": {
		"score": {"type": "integer"},
		"explanation": {"type": "string"},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"improvements": {"type": "array", "items": {"type": "string"}}
	}
}`

var judgePayloadSchema = jsonschema.MustCompileString("judge.json", judgeSchema)

func validateJudgePayload(content string) error {
	var instance interface{}
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("judge payload is not valid json: %w", err)
	}

	if err := judgePayloadSchema.Validate(instance); err != nil {
		return fmt.Errorf("judge payload failed schema validation: %w", err)
	}

	return nil
}
