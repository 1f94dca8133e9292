package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/SoftwareSushi/gpt-academy/internal/middleware"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/internal/utils"
)

// clientHeader identifies the browser profile for preferences that outlive a
// single session, such as the theme.
const clientHeader = "X-Client-ID"

func clientIDFromRequest(c *fiber.Ctx) string {
	if id := strings.TrimSpace(c.Get(clientHeader)); id != "" {
		return id
	}
	return "anonymous"
}

// sendServiceError converts service sentinels into HTTP responses. Anything
// unmapped is a 500 and gets logged with its correlation id.
func sendServiceError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "session not found")
	case errors.Is(err, service.ErrFeedbackNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "no feedback available yet")
	case errors.Is(err, service.ErrCompletionPending):
		return utils.SendError(c, fiber.StatusConflict, "a completion is already in progress")
	case errors.Is(err, service.ErrFeedbackPending):
		return utils.SendError(c, fiber.StatusConflict, "a feedback request is already in progress")
	case errors.Is(err, service.ErrNoPendingCompletion):
		return utils.SendError(c, fiber.StatusConflict, "no completion in progress")
	case errors.Is(err, service.ErrCompletionCancelled):
		return utils.SendError(c, fiber.StatusConflict, "completion cancelled")
	case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrEmptyTitle), errors.Is(err, service.ErrUnknownPanel):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAttachmentTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, service.ErrCompletionFailed), errors.Is(err, service.ErrFeedbackFailed):
		logger.Warn().Err(err).Msg("upstream engine failure")
		return utils.SendError(c, fiber.StatusBadGateway, "upstream model request failed")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		requestLogger(logger, c).Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
