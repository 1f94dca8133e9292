package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/SoftwareSushi/gpt-academy/internal/database"
	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/handler"
	"github.com/SoftwareSushi/gpt-academy/internal/models"
	"github.com/SoftwareSushi/gpt-academy/internal/repository"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
)

// newPlaygroundApp wires real services over an in-memory sqlite database so
// the session, settings, and panel routes are exercised end to end.
func newPlaygroundApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := database.ConnectSQLite("")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Session{},
		&models.Attachment{},
		&models.ConversationTurn{},
		&models.Assignment{},
		&models.Feedback{},
	))

	logger := zerolog.New(io.Discard)
	validate := validator.New()
	cache := service.NewSnapshotCache(nil, time.Minute, logger)

	sessionRepo := repository.NewSessionRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	turnRepo := repository.NewTurnRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	sessionService := service.NewSessionService(sessionRepo, attachmentRepo, turnRepo, assignmentRepo, feedbackRepo, cache, logger)
	settingsService := service.NewSettingsService(sessionRepo, validate, cache, logger)

	app := fiber.New()
	group := app.Group("/api/v1/sessions")
	handler.NewSessionHandler(sessionService, logger).Register(group)
	handler.NewSettingsHandler(settingsService, logger).Register(group)
	return app
}

func TestPlaygroundSessionLifecycle(t *testing.T) {
	app := newPlaygroundApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data dto.SessionResponse `json:"data"`
	}
	decodeResponse(t, resp, &created)
	sessionID := created.Data.ID
	require.NotEmpty(t, sessionID)
	require.Equal(t, models.ModelGPT4, created.Data.Settings.Model)

	// Partial settings update keeps the rest of the configuration intact.
	resp = postJSONMethod(t, app, http.MethodPatch, "/api/v1/sessions/"+sessionID+"/settings",
		dto.SettingsUpdateRequest{Temperature: floatPtr(1.9)})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated struct {
		Data dto.SettingsResponse `json:"data"`
	}
	decodeResponse(t, resp, &updated)
	require.InDelta(t, 1.9, updated.Data.Temperature, 1e-9)
	require.Equal(t, 2048, updated.Data.MaxOutputTokens)

	// The snapshot reflects the mutation and includes the seeded assignment.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+sessionID, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var snapshot struct {
		Data dto.SessionSnapshot `json:"data"`
	}
	decodeResponse(t, resp, &snapshot)
	require.InDelta(t, 1.9, snapshot.Data.Session.Settings.Temperature, 1e-9)
	require.Equal(t, "Pirate GPT Challenge", snapshot.Data.Assignment.Title)
	require.Empty(t, snapshot.Data.Turns)

	// Panel toggle round-trips through the database.
	resp, err = app.Test(httptest.NewRequest(http.MethodPatch, "/api/v1/sessions/"+sessionID+"/panels/left", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var panels struct {
		Data dto.PanelToggleResponse `json:"data"`
	}
	decodeResponse(t, resp, &panels)
	require.True(t, panels.Data.LeftPanelCollapsed)
	require.False(t, panels.Data.RightPanelCollapsed)
}

func postJSONMethod(t *testing.T, app *fiber.App, method, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func floatPtr(v float64) *float64 { return &v }
