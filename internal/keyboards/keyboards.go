package keyboards

import (
	"fmt"
	"sort"

	telebot "gopkg.in/telebot.v3"

	"gmeet-jira-bot/internal/constants"
	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/internal/workflow"
)

// Keyboard projection for multi-select and enumerated steps. Rendering
// is deterministic: the same catalog and selection always produce the
// same layout. Items follow catalog order; priorities are sorted by
// display name.

// SelectGuests renders the guest catalog with toggle marks and a
// confirm button
func SelectGuests(guests []models.Guest, selected []string) *telebot.ReplyMarkup {
	selectedSet := toSet(selected)

	buttons := make([]telebot.InlineButton, 0, len(guests))
	for _, guest := range guests {
		mark := "❌"
		if selectedSet[fmt.Sprintf("%d", guest.ID)] {
			mark = "✅"
		}
		buttons = append(buttons, telebot.InlineButton{
			Text: fmt.Sprintf("%s (%s) %s", guest.Name, guest.Email, mark),
			Data: workflow.EncodeCallback(workflow.ActionToggleGuest, fmt.Sprintf("%d", guest.ID)),
		})
	}

	rows := chunk(buttons, 2)
	rows = append(rows, []telebot.InlineButton{{
		Text: "Confirm",
		Data: workflow.EncodeCallback(workflow.ActionConfirmGuests, ""),
	}})
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

// DeleteGuests renders the guest catalog for deletion
func DeleteGuests(guests []models.Guest) *telebot.ReplyMarkup {
	buttons := make([]telebot.InlineButton, 0, len(guests))
	for _, guest := range guests {
		buttons = append(buttons, telebot.InlineButton{
			Text: fmt.Sprintf("%s (%s)", guest.Name, guest.Email),
			Data: workflow.EncodeCallback(workflow.ActionDeleteGuest, fmt.Sprintf("%d", guest.ID)),
		})
	}
	return &telebot.ReplyMarkup{InlineKeyboard: chunk(buttons, 2)}
}

// Assignees renders the linked-user catalog
func Assignees(users []models.JiraUser) *telebot.ReplyMarkup {
	buttons := make([]telebot.InlineButton, 0, len(users))
	for _, user := range users {
		buttons = append(buttons, telebot.InlineButton{
			Text: user.Name,
			Data: workflow.EncodeCallback(workflow.ActionAssignee, user.AccountID),
		})
	}
	return &telebot.ReplyMarkup{InlineKeyboard: chunk(buttons, 2)}
}

// Labels renders the label set with toggle marks and a done button
func Labels(selected []string) *telebot.ReplyMarkup {
	selectedSet := toSet(selected)

	buttons := make([]telebot.InlineButton, 0, len(constants.JiraLabels))
	for _, label := range constants.JiraLabels {
		mark := "❌"
		if selectedSet[label] {
			mark = "✅"
		}
		buttons = append(buttons, telebot.InlineButton{
			Text: fmt.Sprintf("%s %s", label, mark),
			Data: workflow.EncodeCallback(workflow.ActionToggleLabel, label),
		})
	}

	rows := chunk(buttons, 4)
	rows = append(rows, []telebot.InlineButton{{
		Text: "Done",
		Data: workflow.EncodeCallback(workflow.ActionConfirmLabels, ""),
	}})
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

// Priorities renders the priority levels sorted by display name
func Priorities() *telebot.ReplyMarkup {
	priorities := make([]string, len(constants.JiraPriorities))
	copy(priorities, constants.JiraPriorities)
	sort.Strings(priorities)

	buttons := make([]telebot.InlineButton, 0, len(priorities))
	for _, priority := range priorities {
		buttons = append(buttons, telebot.InlineButton{
			Text: priority,
			Data: workflow.EncodeCallback(workflow.ActionSetPriority, priority),
		})
	}
	return &telebot.ReplyMarkup{InlineKeyboard: chunk(buttons, 5)}
}

// ParentIssues renders the selectable parent issue keys
func ParentIssues(keys []string) *telebot.ReplyMarkup {
	buttons := make([]telebot.InlineButton, 0, len(keys))
	for _, key := range keys {
		buttons = append(buttons, telebot.InlineButton{
			Text: key,
			Data: workflow.EncodeCallback(workflow.ActionSetParent, key),
		})
	}
	return &telebot.ReplyMarkup{InlineKeyboard: chunk(buttons, 2)}
}

// chunk splits buttons into rows of at most perRow
func chunk(buttons []telebot.InlineButton, perRow int) [][]telebot.InlineButton {
	var rows [][]telebot.InlineButton
	for len(buttons) > 0 {
		n := perRow
		if len(buttons) < n {
			n = len(buttons)
		}
		rows = append(rows, buttons[:n])
		buttons = buttons[n:]
	}
	return rows
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
