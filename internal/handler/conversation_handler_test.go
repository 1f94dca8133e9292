package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/handler"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
)

type mockConversationService struct {
	exchange dto.ExchangeResponse
	turns    []dto.TurnResponse
	err      error
}

func (m *mockConversationService) List(_ context.Context, _ string) ([]dto.TurnResponse, error) {
	return m.turns, m.err
}

func (m *mockConversationService) Submit(_ context.Context, _ string, _ dto.SubmitRequest) (dto.ExchangeResponse, error) {
	return m.exchange, m.err
}

func (m *mockConversationService) CancelPending(_ context.Context, _ string) error {
	return m.err
}

func newConversationApp(svc service.ConversationService) *fiber.App {
	app := fiber.New()
	handler.NewConversationHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/sessions"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestConversationHandler_Submit(t *testing.T) {
	svc := &mockConversationService{exchange: dto.ExchangeResponse{
		UserTurn:      dto.TurnResponse{ID: "t1", Role: "user", Content: "hi"},
		AssistantTurn: dto.TurnResponse{ID: "t2", Role: "assistant", Content: "Arr"},
	}}
	app := newConversationApp(svc)

	resp := postJSON(t, app, "/api/v1/sessions/s1/messages", dto.SubmitRequest{Content: "hi"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Data dto.ExchangeResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "Arr", response.Data.AssistantTurn.Content)
}

func TestConversationHandler_SubmitWhilePendingIs409(t *testing.T) {
	svc := &mockConversationService{err: service.ErrCompletionPending}
	app := newConversationApp(svc)

	resp := postJSON(t, app, "/api/v1/sessions/s1/messages", dto.SubmitRequest{Content: "hi"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestConversationHandler_CompletionFailureIs502(t *testing.T) {
	svc := &mockConversationService{err: service.ErrCompletionFailed}
	app := newConversationApp(svc)

	resp := postJSON(t, app, "/api/v1/sessions/s1/messages", dto.SubmitRequest{Content: "hi"})
	require.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}

func TestConversationHandler_CancelWithoutPendingIs409(t *testing.T) {
	svc := &mockConversationService{err: service.ErrNoPendingCompletion}
	app := newConversationApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/s1/messages/pending", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
