package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SoftwareSushi/gpt-academy/internal/config"
	"github.com/SoftwareSushi/gpt-academy/internal/handler"
	"github.com/SoftwareSushi/gpt-academy/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SessionHandler      *handler.SessionHandler
	SettingsHandler     *handler.SettingsHandler
	AttachmentHandler   *handler.AttachmentHandler
	ConversationHandler *handler.ConversationHandler
	AssignmentHandler   *handler.AssignmentHandler
	FeedbackHandler     *handler.FeedbackHandler
	ThemeHandler        *handler.ThemeHandler
	EventsHandler       *handler.EventsHandler
	JWTMiddleware       fiber.Handler
	TeacherOnly         fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	sessions := api.Group("/sessions")

	if deps.SessionHandler != nil {
		deps.SessionHandler.Register(sessions)
	}
	if deps.SettingsHandler != nil {
		deps.SettingsHandler.Register(sessions)
	}
	if deps.AttachmentHandler != nil {
		deps.AttachmentHandler.Register(sessions)
	}
	if deps.ConversationHandler != nil {
		deps.ConversationHandler.Register(sessions)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.Register(sessions)
	}
	if deps.EventsHandler != nil {
		deps.EventsHandler.Register(sessions)
	}

	if deps.AssignmentHandler != nil {
		// Committing the assignment requires an authenticated teacher.
		guards := make([]fiber.Handler, 0, 2)
		if deps.JWTMiddleware != nil {
			guards = append(guards, deps.JWTMiddleware)
		}
		if deps.TeacherOnly != nil {
			guards = append(guards, deps.TeacherOnly)
		}
		deps.AssignmentHandler.Register(sessions, guards...)
	}

	if deps.ThemeHandler != nil {
		theme := api.Group("/preferences/theme")
		deps.ThemeHandler.Register(theme)
	}
}
