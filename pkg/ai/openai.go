package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	completionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "playground",
		Subsystem: "ai",
		Name:      "completion_duration_seconds",
		Help:      "Duration of completion engine requests",
	}, []string{"model"})

	completionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playground",
		Subsystem: "ai",
		Name:      "completion_failures_total",
		Help:      "Number of completion engine failures",
	}, []string{"model"})

	judgeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "playground",
		Subsystem: "ai",
		Name:      "judge_duration_seconds",
		Help:      "Duration of judge engine requests",
	}, []string{"model"})

	judgeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playground",
		Subsystem: "ai",
		Name:      "judge_failures_total",
		Help:      "Number of judge engine failures",
	}, []string{"model"})
)

const judgeModel = "gpt-4o-mini"

// OpenAIConfig defines configuration options for the OpenAI engines.
type OpenAIConfig struct {
	APIKey     string
	JudgeModel string
	Logger     zerolog.Logger
}

// OpenAIClient implements Completer and Judge against the OpenAI chat
// completion API.
type OpenAIClient struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIClient builds a new client using the provided configuration.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.JudgeModel == "" {
		cfg.JudgeModel = judgeModel
	}

	tracer := otel.Tracer("github.com/SoftwareSushi/gpt-academy/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIClient{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// Complete produces the next assistant turn using the caller's generation
// parameters and knowledge context.
func (c *OpenAIClient) Complete(parent context.Context, input CompletionInput) (string, error) {
	ctx, span := c.tracer.Start(parent, "openai.complete", trace.WithAttributes(
		attribute.String("model", input.Params.Model),
		attribute.Int("knowledge_files", len(input.Knowledge)),
	))
	defer span.End()

	messages := make([]openai.ChatCompletionMessage, 0, len(input.Turns)+1)
	if system := knowledgeSystemPrompt(input.Knowledge); system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, turn := range input.Turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	request := openai.ChatCompletionRequest{
		Model:            input.Params.Model,
		MaxTokens:        input.Params.MaxTokens,
		Temperature:      float32(input.Params.Temperature),
		TopP:             float32(input.Params.TopP),
		FrequencyPenalty: float32(input.Params.FrequencyPenalty),
		PresencePenalty:  float32(input.Params.PresencePenalty),
		Messages:         messages,
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	completionDuration.WithLabelValues(input.Params.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		completionFailures.WithLabelValues(input.Params.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai complete: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		completionFailures.WithLabelValues(input.Params.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Evaluate grades the conversation against the assignment and returns the
// structured verdict.
func (c *OpenAIClient) Evaluate(parent context.Context, input JudgeInput) (JudgeResult, error) {
	ctx, span := c.tracer.Start(parent, "openai.judge", trace.WithAttributes(
		attribute.String("model", c.cfg.JudgeModel),
		attribute.Int("turns", len(input.Turns)),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model: c.cfg.JudgeModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: judgeSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildJudgePrompt(input),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	judgeDuration.WithLabelValues(c.cfg.JudgeModel).Observe(time.Since(start).Seconds())
	if err != nil {
		judgeFailures.WithLabelValues(c.cfg.JudgeModel).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResult{}, fmt.Errorf("openai judge: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		judgeFailures.WithLabelValues(c.cfg.JudgeModel).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResult{}, err
	}

	result, err := ParseJudgeResponse(strings.TrimSpace(resp.Choices[0].Message.Content))
	if err != nil {
		judgeFailures.WithLabelValues(c.cfg.JudgeModel).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return JudgeResult{}, err
	}

	return result, nil
}

func knowledgeSystemPrompt(knowledge []string) string {
	if len(knowledge) == 0 {
		return ""
	}

	builder := strings.Builder{}
	builder.WriteString("Reference material supplied by the user:\n")
	for i, content := range knowledge {
		builder.WriteString(fmt.Sprintf("\n--- Document %d ---\n", i+1))
		builder.WriteString(content)
	}
	return builder.String()
}

func judgeSystemPrompt() string {
	return "You are a prompt-engineering teacher grading a student's conversation with an AI model against an assignment. " +
		"Respond with a JSON object containing score (integer 0-10), explanation (string), strengths (array of strings), " +
		"and improvements (array of strings). Grade against the rubric criteria."
}

func buildJudgePrompt(input JudgeInput) string {
	builder := strings.Builder{}
	builder.WriteString("# Assignment\n")
	builder.WriteString(input.Title)
	builder.WriteString("\n\n## Instructions\n")
	builder.WriteString(input.Instructions)
	if len(input.Rubric) > 0 {
		builder.WriteString("\n\n## Rubric\n")
		for _, criterion := range input.Rubric {
			builder.WriteString("- ")
			builder.WriteString(criterion)
			builder.WriteString("\n")
		}
	}
	builder.WriteString("\n## Conversation\n")
	for _, turn := range input.Turns {
		builder.WriteString(fmt.Sprintf("[%s] %s\n", turn.Role, turn.Content))
	}
	builder.WriteString("\nReturn JSON.")
	return builder.String()
}

// ParseJudgeResponse validates and decodes the judge's JSON payload. The
// score is clamped to [0, 10] after schema validation so a marginally
// off-range model answer does not fail the whole request.
func ParseJudgeResponse(content string) (JudgeResult, error) {
	if err := validateJudgePayload(content); err != nil {
		return JudgeResult{}, err
	}

	var result JudgeResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return JudgeResult{}, fmt.Errorf("parse judge json: %w", err)
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 10 {
		result.Score = 10
	}

	return result, nil
}
