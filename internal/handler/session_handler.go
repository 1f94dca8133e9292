package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// SessionHandler wires session lifecycle, snapshot, and panel routes.
type SessionHandler struct {
	service service.SessionService
	logger  zerolog.Logger
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(service service.SessionService, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		logger:  logger.With().Str("component", "session_handler").Logger(),
	}
}

// Register attaches session endpoints to the router group. Reading a
// session returns the full aggregated snapshot.
func (h *SessionHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/:id", h.snapshot)
	router.Get("/:id/panels", h.panels)
	router.Patch("/:id/panels/:side", h.togglePanel)
}

func (h *SessionHandler) create(c *fiber.Ctx) error {
	session, err := h.service.Create(c.Context())
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "session created", session)
}

func (h *SessionHandler) snapshot(c *fiber.Ctx) error {
	snapshot, err := h.service.Snapshot(c.Context(), c.Params("id"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "session retrieved", snapshot)
}

func (h *SessionHandler) panels(c *fiber.Ctx) error {
	panels, err := h.service.Panels(c.Context(), c.Params("id"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "panels retrieved", panels)
}

func (h *SessionHandler) togglePanel(c *fiber.Ctx) error {
	panels, err := h.service.TogglePanel(c.Context(), c.Params("id"), c.Params("side"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "panel toggled", panels)
}
