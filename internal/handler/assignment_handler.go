package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/dto"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// AssignmentHandler wires the committed assignment routes. The commit route
// is mounted behind the teacher-role JWT guard by the router.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the router group. The guards
// run ahead of the commit handler only; reads stay public.
func (h *AssignmentHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	router.Get("/:id/assignment", h.get)

	commit := append(append([]fiber.Handler{}, guards...), h.commit)
	router.Patch("/:id/assignment", commit...)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	assignment, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *AssignmentHandler) commit(c *fiber.Ctx) error {
	var payload dto.AssignmentCommitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.Commit(c.Context(), c.Params("id"), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment committed", assignment)
}
