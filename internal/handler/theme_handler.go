package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// ThemeHandler wires the theme preference routes. The preference is keyed by
// the X-Client-ID header so it follows the browser profile, not the session.
type ThemeHandler struct {
	service service.ThemeService
	logger  zerolog.Logger
}

// NewThemeHandler constructs the handler.
func NewThemeHandler(service service.ThemeService, logger zerolog.Logger) *ThemeHandler {
	return &ThemeHandler{
		service: service,
		logger:  logger.With().Str("component", "theme_handler").Logger(),
	}
}

// Register attaches theme endpoints to the router group.
func (h *ThemeHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Put("/toggle", h.toggle)
}

func (h *ThemeHandler) get(c *fiber.Ctx) error {
	theme, err := h.service.Get(c.Context(), clientIDFromRequest(c))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "theme retrieved", theme)
}

func (h *ThemeHandler) toggle(c *fiber.Ctx) error {
	theme, err := h.service.Toggle(c.Context(), clientIDFromRequest(c))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "theme toggled", theme)
}
