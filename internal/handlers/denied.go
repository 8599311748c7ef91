package handlers

import (
	"context"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/permissions"
)

// DeniedHandler answers senders outside the allowlists
type DeniedHandler struct {
	logger *logrus.Logger
}

// NewDeniedHandler creates a new denied handler
func NewDeniedHandler(logger *logrus.Logger) *DeniedHandler {
	return &DeniedHandler{logger: logger}
}

// CanHandle checks if the handler can handle the given access type
func (h *DeniedHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.None
}

// Handle handles a message from a sender without access
func (h *DeniedHandler) Handle(ctx context.Context, c telebot.Context) error {
	h.logger.Warnf("Denied message from user %d in chat %d", c.Sender().ID, c.Chat().ID)
	return c.Send("You don't have permission to use this bot.")
}
