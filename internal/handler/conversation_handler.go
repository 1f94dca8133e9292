package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// ConversationHandler wires the message exchange routes.
type ConversationHandler struct {
	service service.ConversationService
	logger  zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service service.ConversationService, logger zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		logger:  logger.With().Str("component", "conversation_handler").Logger(),
	}
}

// Register attaches conversation endpoints to the router group.
func (h *ConversationHandler) Register(router fiber.Router) {
	router.Get("/:id/messages", h.list)
	router.Post("/:id/messages", h.submit)
	router.Delete("/:id/messages/pending", h.cancel)
}

func (h *ConversationHandler) list(c *fiber.Ctx) error {
	turns, err := h.service.List(c.Context(), c.Params("id"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "messages retrieved", turns)
}

func (h *ConversationHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	exchange, err := h.service.Submit(c.Context(), c.Params("id"), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message exchanged", exchange)
}

func (h *ConversationHandler) cancel(c *fiber.Ctx) error {
	if err := h.service.CancelPending(c.Context(), c.Params("id")); err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "completion cancelled", fiber.Map{"id": c.Params("id")})
}
