package helpers

import (
	"fmt"
	"strings"

	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/internal/workflow"
)

// FormatReview renders the confirmation summary shown before an issue
// is created. Skipped optional links are left out; the assignee line
// shows the resolved display name when available.
func FormatReview(fields *models.FieldMap, assigneeName string, attachments int) string {
	var b strings.Builder
	b.WriteString("Please review the issue:\n")

	writeLine := func(label, field string) {
		value, ok := fields.Get(field)
		if !ok {
			return
		}
		switch v := value.(type) {
		case string:
			if v != "" {
				b.WriteString(fmt.Sprintf("\n*%s:* %s", label, v))
			}
		case []string:
			if len(v) > 0 {
				b.WriteString(fmt.Sprintf("\n*%s:* %s", label, strings.Join(v, ", ")))
			}
		}
	}

	writeLine("Title", workflow.FieldTitle)
	writeLine("Description", workflow.FieldDescription)
	if assigneeName != "" {
		b.WriteString(fmt.Sprintf("\n*Assignee:* %s", assigneeName))
	}
	writeLine("Figma", workflow.FieldFigmaLink)
	writeLine("Confluence", workflow.FieldConfluenceLink)
	writeLine("Labels", workflow.FieldLabels)
	writeLine("Priority", workflow.FieldPriority)
	writeLine("Parent", workflow.FieldParent)
	if attachments > 0 {
		b.WriteString(fmt.Sprintf("\n*Attachments:* %d", attachments))
	}

	b.WriteString("\n\nSend /confirm to create the issue or /cancel to discard it.")
	return b.String()
}
