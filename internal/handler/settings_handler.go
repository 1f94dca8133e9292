package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// SettingsHandler wires model configuration routes.
type SettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(service service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger.With().Str("component", "settings_handler").Logger(),
	}
}

// Register attaches settings endpoints to the router group.
func (h *SettingsHandler) Register(router fiber.Router) {
	router.Get("/:id/settings", h.get)
	router.Patch("/:id/settings", h.update)
}

func (h *SettingsHandler) get(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "settings retrieved", settings)
}

func (h *SettingsHandler) update(c *fiber.Ctx) error {
	var payload dto.SettingsUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	settings, err := h.service.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "settings updated", settings)
}
