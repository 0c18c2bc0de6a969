package main

import (
	"log/slog"
	"os"

	api "meetnotes-backend/cmd/api"
	summarydomain "meetnotes-backend/internal/summary/domain"
	summaryRepo "meetnotes-backend/internal/summary/repository"
	summaryUsecase "meetnotes-backend/internal/summary/usecase"
	"meetnotes-backend/pkg/config"
	"meetnotes-backend/pkg/database"
	"meetnotes-backend/pkg/llm"
	"meetnotes-backend/pkg/logger"
	"meetnotes-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup("meet-notes-api", cfg.LogLevel)

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&summarydomain.Summary{}, &summarydomain.Share{}); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	// Initialize repositories (dependency injection)
	summaryRepository := summaryRepo.NewSummaryRepository(db)
	shareRepository := summaryRepo.NewShareRepository(db)

	// Initialize LLM collaborator
	if cfg.GroqAPIKey == "" {
		slog.Warn("GROQ_API_KEY not set, summary generation will fail")
	}
	groqService := llm.NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL)

	// Initialize email collaborator
	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		smtpMailer, err := mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
		})
		if err != nil {
			slog.Error("failed to initialize mailer", "error", err)
			os.Exit(1)
		}
		sender = smtpMailer
	} else {
		slog.Warn("SMTP_HOST not set, email sharing will fail")
		sender = mailer.Unconfigured{}
	}

	// Initialize use case
	summaryUc := summaryUsecase.NewSummaryUsecase(summaryRepository, shareRepository, groqService, sender)

	// Initialize HTTP handler
	handler := api.NewHandler(summaryUc, db, sender, cfg)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "web_origin", cfg.WebOrigin)
	if err := handler.Start(":" + cfg.Port); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
