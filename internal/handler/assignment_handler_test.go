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
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/handler"
	"github.com/SoftwareSushi/gpt-academy/internal/middleware"
)

const testSecret = "test-secret"

type mockAssignmentService struct {
	assignment dto.AssignmentResponse
	committed  *dto.AssignmentCommitRequest
}

func (m *mockAssignmentService) Get(_ context.Context, _ string) (dto.AssignmentResponse, error) {
	return m.assignment, nil
}

func (m *mockAssignmentService) Commit(_ context.Context, _ string, payload dto.AssignmentCommitRequest) (dto.AssignmentResponse, error) {
	m.committed = &payload
	if payload.Title != nil {
		m.assignment.Title = *payload.Title
	}
	return m.assignment, nil
}

func newAssignmentApp(svc *mockAssignmentService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/sessions")
	handler.NewAssignmentHandler(svc, zerolog.New(io.Discard)).
		Register(group, middleware.JWTProtected(testSecret), middleware.RequireRole("teacher"))
	return app
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func commitRequest(t *testing.T, token string) *http.Request {
	t.Helper()
	body, err := json.Marshal(dto.AssignmentCommitRequest{Title: strPtr("New Title")})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/s1/assignment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func strPtr(v string) *string { return &v }

func TestAssignmentHandler_ReadIsPublic(t *testing.T) {
	svc := &mockAssignmentService{assignment: dto.AssignmentResponse{Title: "Pirate GPT Challenge"}}
	app := newAssignmentApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sessions/s1/assignment", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAssignmentHandler_CommitRequiresToken(t *testing.T) {
	svc := &mockAssignmentService{}
	app := newAssignmentApp(svc)

	resp, err := app.Test(commitRequest(t, ""))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Nil(t, svc.committed)
}

func TestAssignmentHandler_CommitRequiresTeacherRole(t *testing.T) {
	svc := &mockAssignmentService{}
	app := newAssignmentApp(svc)

	resp, err := app.Test(commitRequest(t, signToken(t, "student")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Nil(t, svc.committed)
}

func TestAssignmentHandler_CommitAsTeacher(t *testing.T) {
	svc := &mockAssignmentService{assignment: dto.AssignmentResponse{Title: "Pirate GPT Challenge"}}
	app := newAssignmentApp(svc)

	resp, err := app.Test(commitRequest(t, signToken(t, "teacher")))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.committed)

	var response struct {
		Data dto.AssignmentResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "New Title", response.Data.Title)
}
