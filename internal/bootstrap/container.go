package bootstrap

import (
	"context"
	"log"
	"time"

	"legal-agent-be/internal/config"
	"legal-agent-be/internal/controller"
	"legal-agent-be/internal/pkg/logger"
	"legal-agent-be/internal/pkg/mailer"
	"legal-agent-be/internal/repository/memory"
	"legal-agent-be/internal/service"
	"legal-agent-be/pkg/calendar"
	"legal-agent-be/pkg/llm/factory"
	"legal-agent-be/pkg/pipeline"
	"legal-agent-be/pkg/websearch"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	ReviewController controller.IReviewController

	// Shared state the server wires into middleware
	Sessions *memory.SessionRepository

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	if cfg.App.PasswordHash == "" {
		log.Fatal("[FATAL] APP_PASSWORD_HASH is required to gate the login endpoint")
	}
	if cfg.SMTP.Email == "" || cfg.SMTP.Password == "" {
		log.Println("[WARN] SENDER_EMAIL/EMAIL_PASSWORD not set; summary delivery will fail until configured")
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
	)

	// 2. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. External collaborators
	searchClient := websearch.NewClient(cfg.Keys.Tavily)

	var calendarAPI calendar.API
	if googleAPI, err := calendar.NewGoogleAPI(context.Background(), cfg.Keys.GoogleCalendarToken); err != nil {
		// Calendar sync degrades to a reported "not configured" outcome.
		log.Printf("[WARN] Google Calendar unavailable: %v", err)
	} else {
		calendarAPI = googleAPI
	}

	// 4. Services
	sessionRepo := memory.NewSessionRepository()
	authService := service.NewAuthService(cfg.App.PasswordHash, sessionRepo)

	guard := pipeline.NewGuard(time.Duration(cfg.Pipeline.TimeoutMinutes) * time.Minute)

	reviewService := service.NewReviewService(
		llmProvider, searchClient, emailService, calendarAPI, guard, cfg.App.ArtifactDir, sysLogger,
	)

	// 5. Controllers
	return &Container{
		AuthController:   controller.NewAuthController(authService),
		ReviewController: controller.NewReviewController(reviewService, cfg.App.UploadDir),
		Sessions:         sessionRepo,
		Logger:           sysLogger,
	}
}
