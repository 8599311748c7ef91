package handlers

import (
	"context"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/config"
	"gmeet-jira-bot/internal/permissions"
	"gmeet-jira-bot/internal/services"
	"gmeet-jira-bot/internal/storage"
	"gmeet-jira-bot/internal/workflow"
	"gmeet-jira-bot/pkg/authserver"
)

// MessageHandler defines the interface for handling Telegram messages
type MessageHandler interface {
	Handle(ctx context.Context, c telebot.Context) error
	CanHandle(accessType permissions.AccessType) bool
}

// HandlerFactory creates message handlers
type HandlerFactory struct {
	engine           *workflow.Engine
	jiraService      *services.JiraService
	calendarService  *services.CalendarService
	analyticsService *services.AnalyticsService
	qrService        *services.QRService
	guestRepo        *storage.GuestRepo
	userRepo         *storage.JiraUserRepo
	authServer       *authserver.Server
	config           *config.Config
	logger           *logrus.Logger
}

// NewHandlerFactory creates a new handler factory
func NewHandlerFactory(
	engine *workflow.Engine,
	jiraService *services.JiraService,
	calendarService *services.CalendarService,
	analyticsService *services.AnalyticsService,
	qrService *services.QRService,
	guestRepo *storage.GuestRepo,
	userRepo *storage.JiraUserRepo,
	authServer *authserver.Server,
	config *config.Config,
	logger *logrus.Logger,
) *HandlerFactory {
	return &HandlerFactory{
		engine:           engine,
		jiraService:      jiraService,
		calendarService:  calendarService,
		analyticsService: analyticsService,
		qrService:        qrService,
		guestRepo:        guestRepo,
		userRepo:         userRepo,
		authServer:       authServer,
		config:           config,
		logger:           logger,
	}
}

// CreateHandler creates a message handler for the given access type
func (f *HandlerFactory) CreateHandler(accessType permissions.AccessType) MessageHandler {
	switch accessType {
	case permissions.Member:
		return NewMemberHandler(f.engine, f.jiraService, f.calendarService, f.analyticsService,
			f.qrService, f.guestRepo, f.userRepo, f.authServer, f.config, f.logger)
	default:
		return NewDeniedHandler(f.logger)
	}
}
