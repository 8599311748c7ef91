package handlers

import (
	"context"
	"fmt"

	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/constants"
	"gmeet-jira-bot/internal/helpers"
	"gmeet-jira-bot/internal/keyboards"
	"gmeet-jira-bot/pkg/analyticsclient"
)

// handleMyIssues lists the sender's open tasks
func (h *MemberHandler) handleMyIssues(ctx context.Context, c telebot.Context) error {
	user, err := h.userRepo.FindByTelegramID(ctx, c.Sender().ID)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch your tasks: %v", err), nil)
	}
	if user == nil {
		return h.sendTextMessage(c, "Your Jira account is not linked to this Telegram ID.", nil)
	}

	issues, err := h.jiraService.IssuesByAccount(ctx, user.AccountID)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch your tasks: %v", err), nil)
	}
	if len(issues) == 0 {
		return h.sendTextMessage(c, "You currently have no tasks with the specified statuses.", nil)
	}

	return h.sendTextMessage(c, helpers.FormatAssignedTasks("📋 Your tasks", issues, h.config.Jira.BaseURL), nil)
}

// handleUserIssues shows the assignee catalog for browsing tasks
func (h *MemberHandler) handleUserIssues(ctx context.Context, c telebot.Context) error {
	users, err := h.userRepo.List(ctx)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch assignees: %v", err), nil)
	}
	if len(users) == 0 {
		return h.sendTextMessage(c, "No assignees found.", nil)
	}
	return h.sendTextMessage(c, "Select an assignee to view their tasks:", keyboards.Assignees(users))
}

// handleReadyForTest lists tasks waiting on the test column
func (h *MemberHandler) handleReadyForTest(ctx context.Context, c telebot.Context) error {
	issues, err := h.jiraService.IssuesByStatus(ctx, constants.StatusOnDev)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch tasks: %v", err), nil)
	}
	if len(issues) == 0 {
		return h.sendTextMessage(c, fmt.Sprintf("No tasks with status `%s` found in project %s.",
			constants.StatusOnDev, h.config.Jira.ProjectKey), nil)
	}

	title := fmt.Sprintf("📋 %s tasks in project %s", constants.StatusOnDev, h.config.Jira.ProjectKey)
	return h.sendTextMessage(c, helpers.FormatStatusTasks(title, issues, h.config.Jira.BaseURL), nil)
}

// handleCurrentIssues lists in-progress tasks grouped by assignee
func (h *MemberHandler) handleCurrentIssues(ctx context.Context, c telebot.Context) error {
	issues, err := h.jiraService.IssuesByStatus(ctx, constants.StatusInProgress)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch tasks: %v", err), nil)
	}
	if len(issues) == 0 {
		return h.sendTextMessage(c, fmt.Sprintf("No tasks with status `%s` found in project %s.",
			constants.StatusInProgress, h.config.Jira.ProjectKey), nil)
	}

	title := fmt.Sprintf("🔨 %s tasks in project %s", constants.StatusInProgress, h.config.Jira.ProjectKey)
	return h.sendTextMessage(c, helpers.FormatInProgressTasks(title, issues, h.config.Jira.BaseURL), nil)
}

// handleAllBugs lists the project's open bugs
func (h *MemberHandler) handleAllBugs(ctx context.Context, c telebot.Context) error {
	bugs, err := h.jiraService.AllBugs(ctx)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch bugs: %v", err), nil)
	}
	if len(bugs) == 0 {
		return h.sendTextMessage(c, "No bugs found with statuses TO DO, IN PROGRESS, or IN REVIEW.", nil)
	}

	return h.sendTextMessage(c, helpers.FormatBugs(bugs, h.config.Jira.BaseURL), nil)
}

// sendReport runs one analytics query and renders the result
func (h *MemberHandler) sendReport(c telebot.Context, title string, report *analyticsclient.Report, err error) error {
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch analytics data: %v", err), nil)
	}
	return h.sendTextMessage(c, helpers.FormatReport(title, report), nil)
}

// handleGaActiveUsers reports active users per city over the last week
func (h *MemberHandler) handleGaActiveUsers(ctx context.Context, c telebot.Context) error {
	report, err := h.analyticsService.ActiveUsersByCity(ctx)
	return h.sendReport(c, "👥 Active users by city (last 7 days)", report, err)
}

// handleGaRegistrations reports yesterday's registrations
func (h *MemberHandler) handleGaRegistrations(ctx context.Context, c telebot.Context) error {
	report, err := h.analyticsService.DailyRegistrations(ctx)
	return h.sendReport(c, "📈 Registrations (yesterday)", report, err)
}

// handleGaReferrals reports yesterday's referrals by source
func (h *MemberHandler) handleGaReferrals(ctx context.Context, c telebot.Context) error {
	report, err := h.analyticsService.DailyReferrals(ctx)
	return h.sendReport(c, "🔗 Referrals (yesterday)", report, err)
}

// handleGaOnboarding reports yesterday's onboarding completions and skips
func (h *MemberHandler) handleGaOnboarding(ctx context.Context, c telebot.Context) error {
	report, err := h.analyticsService.Onboarding(ctx)
	return h.sendReport(c, "🚀 Onboarding (yesterday)", report, err)
}

// handleGaWallets reports yesterday's wallet connections
func (h *MemberHandler) handleGaWallets(ctx context.Context, c telebot.Context) error {
	report, err := h.analyticsService.WalletConnections(ctx)
	return h.sendReport(c, "👛 Wallet connections (yesterday)", report, err)
}

// handleGaPurchases reports yesterday's exercise purchases
func (h *MemberHandler) handleGaPurchases(ctx context.Context, c telebot.Context) error {
	report, err := h.analyticsService.ExercisePurchases(ctx)
	return h.sendReport(c, "💰 Exercise purchases (yesterday)", report, err)
}
