package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/commands"
	"gmeet-jira-bot/internal/config"
	"gmeet-jira-bot/internal/permissions"
	"gmeet-jira-bot/internal/services"
	"gmeet-jira-bot/internal/storage"
	"gmeet-jira-bot/internal/workflow"
	"gmeet-jira-bot/pkg/authserver"
)

// MemberHandler handles team member commands and drives workflows
type MemberHandler struct {
	BaseHandler
	commandHandlers map[string]func(context.Context, telebot.Context) error
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(
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
) *MemberHandler {
	handler := &MemberHandler{
		BaseHandler: NewBaseHandler(engine, jiraService, calendarService, analyticsService,
			qrService, guestRepo, userRepo, authServer, config, logger),
	}

	handler.initializeCommands()
	return handler
}

// CanHandle checks if the handler can handle the given access type
func (h *MemberHandler) CanHandle(accessType permissions.AccessType) bool {
	return accessType == permissions.Member
}

// Handle handles an update from Telegram
func (h *MemberHandler) Handle(ctx context.Context, c telebot.Context) error {
	if c.Callback() != nil {
		return h.handleCallback(ctx, c)
	}

	if msg := c.Message(); msg != nil && (msg.Photo != nil || msg.Document != nil) {
		return h.handleMedia(ctx, c)
	}

	text := strings.TrimSpace(c.Text())
	if handler, ok := h.commandHandlers[commandName(text)]; ok {
		return handler(ctx, c)
	}

	// Everything else is input for the active workflow, including the
	// /cancel, /done and /confirm sentinels
	if h.engine.Active(c.Chat().ID) {
		return h.handleWorkflowInput(ctx, c, c.Text())
	}

	return h.handleStart(ctx, c)
}

// initializeCommands initializes the command handlers
func (h *MemberHandler) initializeCommands() {
	h.commandHandlers = map[string]func(context.Context, telebot.Context) error{
		commands.Start:   h.handleStart,
		commands.GroupID: h.handleGroupID,

		commands.GmeetAuth:            h.handleGmeetAuth,
		commands.GmeetLink:            h.handleGmeetLink,
		commands.GmeetScheduleMeeting: h.handleScheduleMeeting,
		commands.GmeetAddGuest:        h.handleAddGuest,
		commands.GmeetDeleteGuest:     h.handleDeleteGuest,

		commands.JiraCreateIssue:   h.handleCreateIssue,
		commands.JiraReportBug:     h.handleReportBug,
		commands.JiraMyIssues:      h.handleMyIssues,
		commands.JiraUserIssues:    h.handleUserIssues,
		commands.JiraReadyForTest:  h.handleReadyForTest,
		commands.JiraCurrentIssues: h.handleCurrentIssues,
		commands.JiraAllBugs:       h.handleAllBugs,

		commands.GaActiveUsers:   h.handleGaActiveUsers,
		commands.GaRegistrations: h.handleGaRegistrations,
		commands.GaReferrals:     h.handleGaReferrals,
		commands.GaOnboarding:    h.handleGaOnboarding,
		commands.GaWallets:       h.handleGaWallets,
		commands.GaPurchases:     h.handleGaPurchases,
	}
}

// handleStart handles the /start command
func (h *MemberHandler) handleStart(ctx context.Context, c telebot.Context) error {
	message := "Welcome to the team bot!\n\n" +
		"Google Meet:\n" +
		commands.GmeetAuth + " — authorize Google Calendar access\n" +
		commands.GmeetLink + " — create an instant Meet link\n" +
		commands.GmeetScheduleMeeting + " — schedule a meeting\n" +
		commands.GmeetAddGuest + " — add a guest\n" +
		commands.GmeetDeleteGuest + " — delete a guest\n\n" +
		"Jira:\n" +
		commands.JiraCreateIssue + " — create a task\n" +
		commands.JiraReportBug + " — report a bug (reply to a message)\n" +
		commands.JiraMyIssues + " — your open tasks\n" +
		commands.JiraUserIssues + " — tasks by assignee\n" +
		commands.JiraReadyForTest + " — tasks ready for testing\n" +
		commands.JiraCurrentIssues + " — tasks in progress\n" +
		commands.JiraAllBugs + " — all open bugs\n\n" +
		"Analytics:\n" +
		commands.GaActiveUsers + " — active users by city\n" +
		commands.GaRegistrations + " — yesterday's registrations\n" +
		commands.GaReferrals + " — yesterday's referrals\n" +
		commands.GaOnboarding + " — onboarding completions\n" +
		commands.GaWallets + " — wallet connections\n" +
		commands.GaPurchases + " — exercise purchases"
	return h.sendTextMessage(c, message, nil)
}

// handleGroupID replies with the chat's identifier
func (h *MemberHandler) handleGroupID(ctx context.Context, c telebot.Context) error {
	chat := c.Chat()
	if chat.Type == telebot.ChatGroup || chat.Type == telebot.ChatSuperGroup {
		return h.sendTextMessage(c, fmt.Sprintf("Group ID: %d", chat.ID), nil)
	}
	return h.sendTextMessage(c, fmt.Sprintf("Personal Chat ID: %d", chat.ID), nil)
}

// commandName extracts the leading command token, dropping a bot mention
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return text
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return text
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return name
}
