package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"gmeet-jira-bot/internal/config"
	"gmeet-jira-bot/internal/handlers"
	"gmeet-jira-bot/internal/permissions"
	"gmeet-jira-bot/internal/services"
	"gmeet-jira-bot/internal/storage"
	"gmeet-jira-bot/internal/workflow"
	"gmeet-jira-bot/pkg/analyticsclient"
	"gmeet-jira-bot/pkg/authserver"
	"gmeet-jira-bot/pkg/calendarclient"
	"gmeet-jira-bot/pkg/jiraclient"
	"gmeet-jira-bot/pkg/telegrambot"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel)

	// Connect to the database
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := storage.Connect(ctx, cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database: ", err)
	}
	defer pool.Close()

	if err := storage.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("Failed to prepare database schema: ", err)
	}

	guestRepo := storage.NewGuestRepo(pool)
	userRepo := storage.NewJiraUserRepo(pool)

	// Initialize API clients
	jiraClient := jiraclient.NewClient(cfg.Jira, logger)

	redirectURL := fmt.Sprintf("http://%s:%d/", cfg.Google.OAuthHost, cfg.Google.OAuthPort)
	calendarClient, err := calendarclient.NewClient(cfg.Google.CredentialsFile, redirectURL, logger)
	if err != nil {
		logger.Fatal("Failed to create calendar client: ", err)
	}

	analyticsClient, err := analyticsclient.NewClient(cfg.Analytics, logger)
	if err != nil {
		logger.Fatal("Failed to create analytics client: ", err)
	}

	authServer := authserver.New(cfg.Google.OAuthHost, cfg.Google.OAuthPort, logger)

	// Initialize stores and services
	sessionStore := services.NewSessionStore(logger)
	credentialStore := services.NewCredentialStore(logger)
	qrService := services.NewQRService(logger)

	engine := workflow.NewEngine(sessionStore, credentialStore, logger)
	jiraService := services.NewJiraService(jiraClient, cfg.Jira.ProjectKey, logger)
	calendarService := services.NewCalendarService(calendarClient, credentialStore, logger)
	analyticsService := services.NewAnalyticsService(analyticsClient, logger)

	// Setup permission controller
	permController := permissions.NewController(cfg.Telegram.AllowedUsers, cfg.Telegram.AllowedChats, logger)

	// Initialize bot
	factory := handlers.NewHandlerFactory(engine, jiraService, calendarService, analyticsService,
		qrService, guestRepo, userRepo, authServer, cfg, logger)

	bot, err := telegrambot.NewBot(cfg, factory, permController, logger)
	if err != nil {
		logger.Fatal("Failed to create bot: ", err)
	}

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	// Start bot
	logger.Info("Starting team bot")
	if err := bot.Start(ctx); err != nil {
		logger.Fatal("Bot failed: ", err)
	}
}

// setupLogger sets up the logger
func setupLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()

	if logLevel == "" {
		logLevel = "info"
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Printf("Invalid log level %s, defaulting to info", logLevel)
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
