package handler_test

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/SoftwareSushi/gpt-academy/internal/handler"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
)

func startFiberServer(t *testing.T, app *fiber.App) (string, func()) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		if err := app.Listener(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Logf("fiber listener stopped: %v", err)
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)

	shutdown := func() {
		_ = app.Shutdown()
		_ = listener.Close()
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	return "http://" + listener.Addr().String(), shutdown
}

func TestEventsWebsocketStreamsSessionEvents(t *testing.T) {
	broker := service.NewEventBroker(nil, zerolog.New(io.Discard))

	app := fiber.New()
	handler.NewEventsHandler(broker, zerolog.New(io.Discard)).Register(app.Group("/api/v1/sessions"))

	baseURL, shutdown := startFiberServer(t, app)
	defer shutdown()

	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/api/v1/sessions/s1/events"
	dialer := websocket.Dialer{HandshakeTimeout: 3 * time.Second}

	conn, resp, err := dialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	defer conn.Close()

	// Give the handler a beat to register its subscription.
	time.Sleep(50 * time.Millisecond)

	broker.Publish(service.Event{SessionID: "s1", Type: service.EventTurnAppended})
	broker.Publish(service.Event{SessionID: "s2", Type: service.EventFeedbackReady})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event service.Event
	require.NoError(t, json.Unmarshal(payload, &event))
	require.Equal(t, service.EventTurnAppended, event.Type)
	require.Equal(t, "s1", event.SessionID)
}

func TestEventsEndpointRequiresUpgrade(t *testing.T) {
	broker := service.NewEventBroker(nil, zerolog.New(io.Discard))

	app := fiber.New()
	handler.NewEventsHandler(broker, zerolog.New(io.Discard)).Register(app.Group("/api/v1/sessions"))

	req, err := http.NewRequest(http.MethodGet, "/api/v1/sessions/s1/events", nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
