package handlers

import (
	"context"
	"fmt"
	"strconv"

	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/helpers"
	"gmeet-jira-bot/internal/keyboards"
	"gmeet-jira-bot/internal/workflow"
)

// handleCallback decodes and dispatches an inline button press.
// Malformed payloads are rejected without touching workflow state.
func (h *MemberHandler) handleCallback(ctx context.Context, c telebot.Context) error {
	cb, err := workflow.ParseCallback(c.Callback().Data)
	if err != nil {
		h.logger.Warnf("Rejected callback payload %q: %v", c.Callback().Data, err)
		return c.Respond(&telebot.CallbackResponse{Text: "This button is no longer valid."})
	}

	switch cb.Action {
	case workflow.ActionToggleGuest:
		return h.callbackToggleGuest(ctx, c, cb.Arg)
	case workflow.ActionConfirmGuests:
		return h.callbackConfirmSelection(ctx, c)
	case workflow.ActionDeleteGuest:
		return h.callbackDeleteGuest(ctx, c, cb.Arg)
	case workflow.ActionToggleLabel:
		return h.callbackToggleLabel(ctx, c, cb.Arg)
	case workflow.ActionConfirmLabels:
		return h.callbackConfirmSelection(ctx, c)
	case workflow.ActionAssignee:
		return h.callbackAssignee(ctx, c, cb.Arg)
	case workflow.ActionSetPriority, workflow.ActionSetParent:
		return h.callbackChoice(ctx, c, cb.Arg)
	}

	h.logger.Warnf("Unhandled callback action %q", cb.Action)
	return c.Respond()
}

// callbackToggleGuest flips a guest in the pending selection and
// redraws the keyboard in place
func (h *MemberHandler) callbackToggleGuest(ctx context.Context, c telebot.Context, guestID string) error {
	selection, err := h.engine.Toggle(c.Chat().ID, guestID)
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: "No active workflow."})
	}

	guests, err := h.guestRepo.List(ctx)
	if err != nil {
		h.logger.Errorf("Failed to fetch guests: %v", err)
		return c.Respond()
	}

	if err := c.Edit(keyboards.SelectGuests(guests, selection)); err != nil {
		h.logger.Errorf("Failed to update guest keyboard: %v", err)
	}
	return c.Respond(&telebot.CallbackResponse{Text: "Selection updated!"})
}

// callbackToggleLabel flips a label in the pending selection and
// redraws the keyboard in place
func (h *MemberHandler) callbackToggleLabel(ctx context.Context, c telebot.Context, label string) error {
	selection, err := h.engine.Toggle(c.Chat().ID, label)
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: "No active workflow."})
	}

	if err := c.Edit(keyboards.Labels(selection)); err != nil {
		h.logger.Errorf("Failed to update label keyboard: %v", err)
	}
	return c.Respond()
}

// callbackConfirmSelection commits the pending multi-select selection
// and moves the workflow forward
func (h *MemberHandler) callbackConfirmSelection(ctx context.Context, c telebot.Context) error {
	result, err := h.engine.ConfirmSelection(c.Chat().ID)
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: "No active workflow."})
	}

	c.Respond()
	return h.handleResult(ctx, c, result)
}

// callbackDeleteGuest removes a guest from the catalog
func (h *MemberHandler) callbackDeleteGuest(ctx context.Context, c telebot.Context, arg string) error {
	guestID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		h.logger.Warnf("Rejected guest id %q: %v", arg, err)
		return c.Respond(&telebot.CallbackResponse{Text: "This button is no longer valid."})
	}

	if err := h.guestRepo.Delete(ctx, guestID); err != nil {
		c.Respond()
		return h.sendTextMessage(c, fmt.Sprintf("Failed to delete guest: %v", err), nil)
	}

	c.Respond()
	return h.sendTextMessage(c, "Guest deleted successfully!", nil)
}

// callbackAssignee feeds an assignee pick into the active workflow, or
// lists the account's tasks when no workflow is running
func (h *MemberHandler) callbackAssignee(ctx context.Context, c telebot.Context, accountID string) error {
	chatID := c.Chat().ID

	if _, step, ok := h.engine.Current(chatID); ok && step != nil && step.Field == workflow.FieldAssignee {
		return h.callbackChoice(ctx, c, accountID)
	}

	c.Respond()

	issues, err := h.jiraService.IssuesByAccount(ctx, accountID)
	if err != nil {
		return h.sendTextMessage(c, fmt.Sprintf("Failed to fetch tasks: %v", err), nil)
	}
	if len(issues) == 0 {
		return h.sendTextMessage(c, "No tasks found for this user.", nil)
	}

	return h.sendTextMessage(c, helpers.FormatAssignedTasks("📋 Assigned tasks", issues, h.config.Jira.BaseURL), nil)
}

// callbackChoice feeds an enumerated pick into the active workflow
func (h *MemberHandler) callbackChoice(ctx context.Context, c telebot.Context, value string) error {
	result, err := h.engine.Advance(c.Chat().ID, value)
	if err != nil {
		return c.Respond(&telebot.CallbackResponse{Text: "This option is not available."})
	}

	c.Respond()
	return h.handleResult(ctx, c, result)
}
