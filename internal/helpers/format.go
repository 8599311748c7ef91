package helpers

import (
	"fmt"
	"sort"
	"strings"

	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/pkg/analyticsclient"
)

// Message formatting for issue listings and reports. Listings are
// grouped by parent issue, parents sorted lexicographically; issues
// without a parent land in the "No Parent" group.

// BrowseURL returns the tracker's browse link for an issue key
func BrowseURL(baseURL, key string) string {
	return fmt.Sprintf("%s/browse/%s", strings.TrimRight(baseURL, "/"), key)
}

// GroupByParent splits issues into parent groups and returns the sorted
// group keys alongside the groups
func GroupByParent(issues []models.Issue) (map[string][]models.Issue, []string) {
	groups := make(map[string][]models.Issue)
	for _, issue := range issues {
		parent := issue.ParentKey()
		groups[parent] = append(groups[parent], issue)
	}

	parents := make([]string, 0, len(groups))
	for parent := range groups {
		parents = append(parents, parent)
	}
	sort.Strings(parents)
	return groups, parents
}

// FormatAssignedTasks renders one account's open issues with browse and
// design links, grouped by parent
func FormatAssignedTasks(title string, issues []models.Issue, baseURL string) string {
	if len(issues) == 0 {
		return title + "\n\nNo tasks found."
	}

	var b strings.Builder
	b.WriteString(title)

	groups, parents := GroupByParent(issues)
	for _, parent := range parents {
		b.WriteString(fmt.Sprintf("\n\n*%s*\n", parent))
		for _, issue := range groups[parent] {
			b.WriteString(fmt.Sprintf("\n[%s](%s) %s — %s\n",
				issue.Key, BrowseURL(baseURL, issue.Key), issue.Fields.Summary, issue.StatusName()))
			if issue.Fields.FigmaLink != "" {
				b.WriteString(fmt.Sprintf("[Figma](%s)\n", issue.Fields.FigmaLink))
			}
			if issue.Fields.ConfluenceLink != "" {
				b.WriteString(fmt.Sprintf("[Confluence](%s)\n", issue.Fields.ConfluenceLink))
			}
		}
	}
	return b.String()
}

// FormatStatusTasks renders a status listing grouped by parent
func FormatStatusTasks(title string, issues []models.Issue, baseURL string) string {
	if len(issues) == 0 {
		return title + "\n\nNo tasks found."
	}

	var b strings.Builder
	b.WriteString(title)

	groups, parents := GroupByParent(issues)
	for _, parent := range parents {
		b.WriteString(fmt.Sprintf("\n\n*%s*\n", parent))
		for _, issue := range groups[parent] {
			b.WriteString(fmt.Sprintf("[%s](%s) %s\n",
				issue.Key, BrowseURL(baseURL, issue.Key), issue.Fields.Summary))
		}
	}
	return b.String()
}

// FormatInProgressTasks renders the in-progress listing grouped by
// parent and, within each parent, by assignee display name
func FormatInProgressTasks(title string, issues []models.Issue, baseURL string) string {
	if len(issues) == 0 {
		return title + "\n\nNo tasks found."
	}

	var b strings.Builder
	b.WriteString(title)

	groups, parents := GroupByParent(issues)
	for _, parent := range parents {
		b.WriteString(fmt.Sprintf("\n\n*%s*", parent))

		byAssignee := make(map[string][]models.Issue)
		for _, issue := range groups[parent] {
			byAssignee[issue.AssigneeName()] = append(byAssignee[issue.AssigneeName()], issue)
		}
		assignees := make([]string, 0, len(byAssignee))
		for assignee := range byAssignee {
			assignees = append(assignees, assignee)
		}
		sort.Strings(assignees)

		for _, assignee := range assignees {
			b.WriteString(fmt.Sprintf("\n_%s_\n", assignee))
			for _, issue := range byAssignee[assignee] {
				b.WriteString(fmt.Sprintf("[%s](%s) %s\n",
					issue.Key, BrowseURL(baseURL, issue.Key), issue.Fields.Summary))
			}
		}
	}
	return b.String()
}

// FormatBugs renders the open-bugs listing grouped by parent
func FormatBugs(issues []models.Issue, baseURL string) string {
	if len(issues) == 0 {
		return "🐛 Open bugs\n\nNo bugs found."
	}

	var b strings.Builder
	b.WriteString("🐛 Open bugs")

	groups, parents := GroupByParent(issues)
	for _, parent := range parents {
		b.WriteString(fmt.Sprintf("\n\n*%s*\n", parent))
		for _, issue := range groups[parent] {
			b.WriteString(fmt.Sprintf("[%s](%s) %s — %s (%s)\n",
				issue.Key, BrowseURL(baseURL, issue.Key), issue.Fields.Summary,
				issue.StatusName(), issue.AssigneeName()))
		}
	}
	return b.String()
}

// FormatReport renders a GA report as dimension/metric rows
func FormatReport(title string, report *analyticsclient.Report) string {
	var b strings.Builder
	b.WriteString(title)

	if report == nil || len(report.Rows) == 0 {
		b.WriteString("\n\nNo data.")
		return b.String()
	}

	for _, row := range report.Rows {
		b.WriteString("\n")
		for _, dim := range row.DimensionValues {
			b.WriteString(dim.Value + " ")
		}
		b.WriteString("— ")
		values := make([]string, 0, len(row.MetricValues))
		for _, metric := range row.MetricValues {
			values = append(values, metric.Value)
		}
		b.WriteString(strings.Join(values, " "))
	}
	return b.String()
}
