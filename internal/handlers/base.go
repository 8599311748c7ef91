package handlers

import (
	"bytes"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/config"
	"gmeet-jira-bot/internal/permissions"
	"gmeet-jira-bot/internal/services"
	"gmeet-jira-bot/internal/storage"
	"gmeet-jira-bot/internal/workflow"
	"gmeet-jira-bot/pkg/authserver"
)

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
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

// NewBaseHandler creates a new base handler
func NewBaseHandler(
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
) BaseHandler {
	return BaseHandler{
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

// CanHandle checks if the handler can handle the given access type
func (h *BaseHandler) CanHandle(accessType permissions.AccessType) bool {
	return false
}

// sendTextMessage sends a text message with optional markup
func (h *BaseHandler) sendTextMessage(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	opts := &telebot.SendOptions{
		ParseMode: telebot.ModeMarkdown,
	}

	if markup != nil {
		opts.ReplyMarkup = markup
	}

	_, err := c.Bot().Send(c.Recipient(), text, opts)
	if err != nil {
		h.logger.Errorf("Failed to send message: %v", err)
	}
	return err
}

// sendQRCode sends a QR code for the given URL
func (h *BaseHandler) sendQRCode(c telebot.Context, url string) error {
	qrBytes, err := h.qrService.GenerateQR(url)
	if err != nil {
		h.logger.Errorf("Failed to generate QR code: %v", err)
		return err
	}

	reader := bytes.NewReader(qrBytes)
	photo := &telebot.Photo{File: telebot.FromReader(reader)}

	_, err = c.Bot().Send(c.Recipient(), photo)
	if err != nil {
		h.logger.Errorf("Failed to send QR code: %v", err)
	}
	return err
}
