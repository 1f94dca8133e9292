package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// AttachmentHandler wires knowledge attachment routes.
type AttachmentHandler struct {
	service service.AttachmentService
	logger  zerolog.Logger
}

// NewAttachmentHandler constructs the handler.
func NewAttachmentHandler(service service.AttachmentService, logger zerolog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: service,
		logger:  logger.With().Str("component", "attachment_handler").Logger(),
	}
}

// Register attaches attachment endpoints to the router group.
func (h *AttachmentHandler) Register(router fiber.Router) {
	router.Post("/:id/attachments", h.add)
	router.Get("/:id/attachments", h.list)
	router.Patch("/:id/attachments/:attachmentID/inclusion", h.toggleInclusion)
	router.Delete("/:id/attachments/:attachmentID", h.remove)
}

func (h *AttachmentHandler) add(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "a file upload is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to read uploaded file")
	}

	attachment, err := h.service.Add(c.Context(), c.Params("id"), fileHeader.Filename, data)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attachment added", attachment)
}

func (h *AttachmentHandler) list(c *fiber.Ctx) error {
	includedOnly := c.QueryBool("included")

	attachments, err := h.service.List(c.Context(), c.Params("id"), includedOnly)
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "attachments retrieved", attachments)
}

func (h *AttachmentHandler) toggleInclusion(c *fiber.Ctx) error {
	toggled, err := h.service.ToggleInclusion(c.Context(), c.Params("id"), c.Params("attachmentID"))
	if err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "inclusion toggled", toggled)
}

func (h *AttachmentHandler) remove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.Context(), c.Params("id"), c.Params("attachmentID")); err != nil {
		return sendServiceError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "attachment removed", fiber.Map{"id": c.Params("attachmentID")})
}
