package helpers

import (
	"reflect"
	"strings"
	"testing"

	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/internal/workflow"
	"gmeet-jira-bot/pkg/analyticsclient"
)

func issue(key, summary, status, assignee, parent string) models.Issue {
	i := models.Issue{Key: key}
	i.Fields.Summary = summary
	if status != "" {
		i.Fields.Status = &models.Status{Name: status}
	}
	if assignee != "" {
		i.Fields.Assignee = &models.UserRef{DisplayName: assignee}
	}
	if parent != "" {
		i.Fields.Parent = &models.ParentRef{Key: parent}
	}
	return i
}

func TestGroupByParent(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issue("FA-5", "b", "TO DO", "", "FA-100"),
		issue("FA-6", "a", "TO DO", "", ""),
		issue("FA-7", "c", "TO DO", "", "FA-99"),
		issue("FA-8", "d", "TO DO", "", "FA-100"),
	}

	groups, parents := GroupByParent(issues)

	if want := []string{"FA-100", "FA-99", "No Parent"}; !reflect.DeepEqual(parents, want) {
		t.Fatalf("expected parents %v, got %v", want, parents)
	}
	if len(groups["FA-100"]) != 2 {
		t.Fatalf("expected 2 issues under FA-100, got %d", len(groups["FA-100"]))
	}
	if groups["No Parent"][0].Key != "FA-6" {
		t.Fatalf("expected FA-6 without parent, got %s", groups["No Parent"][0].Key)
	}
}

func TestBrowseURL(t *testing.T) {
	t.Parallel()

	got := BrowseURL("https://team.atlassian.net/", "FA-7")
	if got != "https://team.atlassian.net/browse/FA-7" {
		t.Fatalf("unexpected browse URL %q", got)
	}
}

func TestFormatAssignedTasks(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issue("FA-5", "Fix header", "IN PROGRESS", "Alex", "FA-100"),
	}
	issues[0].Fields.FigmaLink = "https://figma.com/file/abc"

	out := FormatAssignedTasks("📋 Your tasks", issues, "https://team.atlassian.net")

	for _, want := range []string{
		"*FA-100*",
		"[FA-5](https://team.atlassian.net/browse/FA-5) Fix header — IN PROGRESS",
		"[Figma](https://figma.com/file/abc)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}

	empty := FormatAssignedTasks("📋 Your tasks", nil, "https://team.atlassian.net")
	if !strings.Contains(empty, "No tasks found.") {
		t.Fatalf("empty listing should say so, got:\n%s", empty)
	}
}

func TestFormatInProgressTasks_GroupsByAssignee(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issue("FA-1", "One", "IN PROGRESS", "Kim", "FA-100"),
		issue("FA-2", "Two", "IN PROGRESS", "Alex", "FA-100"),
		issue("FA-3", "Three", "IN PROGRESS", "", "FA-100"),
	}

	out := FormatInProgressTasks("🔨 In progress", issues, "https://team.atlassian.net")

	// Assignees sorted; missing assignee shown as Unassigned
	alex := strings.Index(out, "_Alex_")
	kim := strings.Index(out, "_Kim_")
	unassigned := strings.Index(out, "_Unassigned_")
	if alex < 0 || kim < 0 || unassigned < 0 {
		t.Fatalf("missing assignee groups:\n%s", out)
	}
	if !(alex < kim && kim < unassigned) {
		t.Fatalf("assignee groups must be sorted:\n%s", out)
	}
}

func TestFormatBugs(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issue("FA-9", "Crash on submit", "TO DO", "Sam", "FA-99"),
	}

	out := FormatBugs(issues, "https://team.atlassian.net")
	if !strings.Contains(out, "Crash on submit — TO DO (Sam)") {
		t.Fatalf("unexpected bug line:\n%s", out)
	}
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	report := &analyticsclient.Report{
		Rows: []analyticsclient.Row{
			{
				DimensionValues: []analyticsclient.Value{{Value: "Kyiv"}},
				MetricValues:    []analyticsclient.Value{{Value: "128"}},
			},
		},
	}

	out := FormatReport("👥 Active users", report)
	if !strings.Contains(out, "Kyiv — 128") {
		t.Fatalf("unexpected report line:\n%s", out)
	}

	if out := FormatReport("👥 Active users", nil); !strings.Contains(out, "No data.") {
		t.Fatalf("empty report should say so, got:\n%s", out)
	}
}

func TestFormatReview(t *testing.T) {
	t.Parallel()

	fields := models.NewFieldMap()
	fields.Set(workflow.FieldTitle, "Fix login redirect")
	fields.Set(workflow.FieldDescription, "steps to reproduce")
	fields.Set(workflow.FieldLabels, []string{"backend", "frontend"})
	fields.Set(workflow.FieldPriority, "High")
	fields.Set(workflow.FieldParent, "FA-100")

	out := FormatReview(fields, "Alex", 2)

	for _, want := range []string{
		"*Title:* Fix login redirect",
		"*Assignee:* Alex",
		"*Labels:* backend, frontend",
		"*Priority:* High",
		"*Parent:* FA-100",
		"*Attachments:* 2",
		"/confirm",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in review:\n%s", want, out)
		}
	}

	if strings.Contains(out, "Figma") {
		t.Fatalf("skipped link must not appear in review:\n%s", out)
	}
}
