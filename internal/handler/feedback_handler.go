package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// FeedbackHandler wires the judge feedback routes.
type FeedbackHandler struct {
	service service.FeedbackService
	logger  zerolog.Logger
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(service service.FeedbackService, logger zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger.With().Str("component", "feedback_handler").Logger(),
	}
}

// Register attaches feedback endpoints to the router group.
func (h *FeedbackHandler) Register(router fiber.Router) {
	router.Get("/:id/feedback", h.get)
	router.Post("/:id/feedback", h.request)
}

func (h *FeedbackHandler) get(c *fiber.Ctx) error {
	verdict, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "feedback retrieved", verdict)
}

func (h *FeedbackHandler) request(c *fiber.Ctx) error {
	verdict, err := h.service.Request(c.Context(), c.Params("id"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "feedback generated", verdict)
}
