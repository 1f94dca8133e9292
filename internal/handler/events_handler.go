package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/observability"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
)

// EventsHandler upgrades clients to a websocket and streams session events:
// appended turns, resolved extractions, and fresh feedback verdicts.
type EventsHandler struct {
	broker *service.EventBroker
	logger zerolog.Logger
}

// NewEventsHandler constructs the handler.
func NewEventsHandler(broker *service.EventBroker, logger zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		broker: broker,
		logger: logger.With().Str("component", "events_handler").Logger(),
	}
}

// Register attaches the websocket endpoint to the router group.
func (h *EventsHandler) Register(router fiber.Router) {
	router.Use("/:id/events", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	router.Get("/:id/events", websocket.New(h.handleConnection))
}

func (h *EventsHandler) handleConnection(conn *websocket.Conn) {
	sessionID := conn.Params("id")
	if sessionID == "" {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(fiber.StatusBadRequest, "session id required"))
		_ = conn.Close()
		return
	}

	observability.WSConnections().Inc()
	events, unsubscribe := h.broker.Subscribe(sessionID)
	defer unsubscribe()

	h.logger.Info().Str("session_id", sessionID).Msg("events websocket connected")

	// Reads only serve to notice the peer going away; clients never send.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				h.logger.Debug().Err(err).Str("session_id", sessionID).Msg("events websocket write failed")
				_ = conn.Close()
				return
			}
		case <-closed:
			h.logger.Info().Str("session_id", sessionID).Msg("events websocket disconnected")
			return
		}
	}
}
