package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/SoftwareSushi/gpt-academy/internal/config"
	"github.com/SoftwareSushi/gpt-academy/internal/database"
	"github.com/SoftwareSushi/gpt-academy/internal/handler"
	"github.com/SoftwareSushi/gpt-academy/internal/middleware"
	"github.com/SoftwareSushi/gpt-academy/internal/models"
	"github.com/SoftwareSushi/gpt-academy/internal/repository"
	"github.com/SoftwareSushi/gpt-academy/internal/router"
	"github.com/SoftwareSushi/gpt-academy/internal/service"
	"github.com/SoftwareSushi/gpt-academy/pkg/ai"
	cloud "github.com/SoftwareSushi/gpt-academy/pkg/cloudinary"
	"github.com/SoftwareSushi/gpt-academy/pkg/extract"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := connectDatabase(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Session{},
		&models.Attachment{},
		&models.ConversationTurn{},
		&models.Assignment{},
		&models.Feedback{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis disabled: snapshot cache off, theme preference not persisted")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	engines, err := buildEngine(cfg, logger)
	if err != nil {
		log.Fatalf("failed to build ai engine: %v", err)
	}

	var uploader service.FileUploader
	if cfg.CloudinaryCloudName != "" {
		cloudService, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudService
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	sessionRepo := repository.NewSessionRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	turnRepo := repository.NewTurnRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	runtime := service.NewRuntime(cfg.SessionIdleTTL)
	broker := service.NewEventBroker(natsConn, logger)
	cache := service.NewSnapshotCache(redisClient, cfg.SnapshotCacheTTL, logger)
	extractor := extract.New(logger)

	sessionService := service.NewSessionService(sessionRepo, attachmentRepo, turnRepo, assignmentRepo, feedbackRepo, cache, logger)
	settingsService := service.NewSettingsService(sessionRepo, validate, cache, logger)
	attachmentService := service.NewAttachmentService(sessionRepo, attachmentRepo, extractor, uploader, broker, cache, cfg.UploadMaxMB, cfg.ExtractionTimeout, logger)
	conversationService := service.NewConversationService(sessionRepo, turnRepo, attachmentRepo, engines.completer, runtime, broker, cache, validate, cfg.CompletionTimeout, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, cache, logger)
	feedbackService := service.NewFeedbackService(sessionRepo, turnRepo, assignmentRepo, feedbackRepo, engines.judge, runtime, broker, cache, cfg.JudgeTimeout, logger)
	themeService := service.NewThemeService(redisClient, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.UploadMaxMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		SessionHandler:      handler.NewSessionHandler(sessionService, logger),
		SettingsHandler:     handler.NewSettingsHandler(settingsService, logger),
		AttachmentHandler:   handler.NewAttachmentHandler(attachmentService, logger),
		ConversationHandler: handler.NewConversationHandler(conversationService, logger),
		AssignmentHandler:   handler.NewAssignmentHandler(assignmentService, logger),
		FeedbackHandler:     handler.NewFeedbackHandler(feedbackService, logger),
		ThemeHandler:        handler.NewThemeHandler(themeService, logger),
		EventsHandler:       handler.NewEventsHandler(broker, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		TeacherOnly:         middleware.RequireRole("teacher"),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func connectDatabase(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		return database.ConnectPostgres(cfg.DatabaseURL)
	}

	return database.ConnectSQLite(cfg.SQLitePath)
}

type engine struct {
	completer ai.Completer
	judge     ai.Judge
}

func buildEngine(cfg config.Config, logger zerolog.Logger) (engine, error) {
	switch cfg.AIProvider {
	case "anthropic":
		client, err := ai.NewAnthropicClient(ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey})
		if err != nil {
			return engine{}, err
		}
		return engine{completer: client, judge: client}, nil
	default:
		client, err := ai.NewOpenAIClient(ai.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, Logger: logger})
		if err != nil {
			return engine{}, err
		}
		return engine{completer: client, judge: client}, nil
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
