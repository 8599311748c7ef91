package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	apperrors "gmeet-jira-bot/internal/errors"
	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/internal/workflow"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func taskRecord() *workflow.Record {
	fields := models.NewFieldMap()
	fields.Set(workflow.FieldTitle, "Fix login redirect")
	fields.Set(workflow.FieldDescription, "steps to reproduce\n")
	fields.Set(workflow.FieldAssignee, "acc-1")
	fields.Set(workflow.FieldConfluenceLink, "https://confluence.example.com/p")
	fields.Set(workflow.FieldLabels, []string{"backend"})
	fields.Set(workflow.FieldPriority, "High")
	fields.Set(workflow.FieldParent, "FA-100")

	return &workflow.Record{Workflow: workflow.TaskWorkflow, Fields: fields}
}

func TestJiraService_IssueFields(t *testing.T) {
	t.Parallel()

	svc := NewJiraService(newMemJiraAPI(), "FA", testLogger())

	fields, err := svc.IssueFields(taskRecord())
	if err != nil {
		t.Fatalf("IssueFields: %v", err)
	}

	if got := fields["issuetype"].(map[string]string)["name"]; got != "Task" {
		t.Fatalf("expected Task issue type, got %q", got)
	}
	if got := fields["priority"].(map[string]string)["name"]; got != "High" {
		t.Fatalf("expected High priority, got %q", got)
	}
	if got := fields["assignee"].(map[string]string)["accountId"]; got != "acc-1" {
		t.Fatalf("expected assignee acc-1, got %q", got)
	}
	if got := fields["parent"].(map[string]string)["key"]; got != "FA-100" {
		t.Fatalf("expected parent FA-100, got %q", got)
	}

	// The skipped Figma link must be absent, not empty
	if _, present := fields["customfield_10104"]; present {
		t.Fatal("skipped figma link must be omitted")
	}
	if got := fields["customfield_10105"]; got != "https://confluence.example.com/p" {
		t.Fatalf("unexpected confluence link %v", got)
	}
}

func TestJiraService_IssueFieldsBugType(t *testing.T) {
	t.Parallel()

	record := taskRecord()
	record.Workflow = workflow.BugWorkflow

	svc := NewJiraService(newMemJiraAPI(), "FA", testLogger())
	fields, err := svc.IssueFields(record)
	if err != nil {
		t.Fatalf("IssueFields: %v", err)
	}
	if got := fields["issuetype"].(map[string]string)["name"]; got != "Bug" {
		t.Fatalf("expected Bug issue type, got %q", got)
	}
}

func TestJiraService_IssueFieldsRejectsUnknownPriority(t *testing.T) {
	t.Parallel()

	record := taskRecord()
	record.Fields.Set(workflow.FieldPriority, "Urgent")

	svc := NewJiraService(newMemJiraAPI(), "FA", testLogger())
	_, err := svc.IssueFields(record)

	var invalid *apperrors.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestJiraService_CreateFromRecordCollectsAttachErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "ok.png")
	if err := os.WriteFile(good, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "broken.png")

	api := newMemJiraAPI()
	api.attachErr[bad] = errors.New("boom")

	record := taskRecord()
	record.Attachments = []string{good, bad}

	svc := NewJiraService(api, "FA", testLogger())
	key, attachErrs, err := svc.CreateFromRecord(context.Background(), record)
	if err != nil {
		t.Fatalf("CreateFromRecord: %v", err)
	}
	if key != "FA-123" {
		t.Fatalf("expected key FA-123, got %q", key)
	}
	if len(attachErrs) != 1 || !strings.Contains(attachErrs[0].Error(), "broken.png") {
		t.Fatalf("expected one attach error for broken.png, got %v", attachErrs)
	}
	if len(api.attached["FA-123"]) != 1 {
		t.Fatalf("expected one successful attachment, got %v", api.attached)
	}
	// Uploaded files are removed, failed ones kept for retry
	if _, err := os.Stat(good); !os.IsNotExist(err) {
		t.Fatal("uploaded attachment should be removed")
	}
}

func TestJiraService_JQLBuilders(t *testing.T) {
	t.Parallel()

	jql := BuildAssigneeJQL("acc-1", []string{"TO DO", "IN PROGRESS"})
	if jql != `assignee = "acc-1" AND status IN ("TO DO", "IN PROGRESS")` {
		t.Fatalf("unexpected assignee JQL %q", jql)
	}

	jql = BuildStatusJQL("IN PROGRESS", "FA")
	if jql != `status = "IN PROGRESS" AND project = "FA"` {
		t.Fatalf("unexpected status JQL %q", jql)
	}

	jql = BuildBugsJQL("FA", []string{"TO DO"})
	if jql != `project = "FA" AND issuetype = "Bug" AND status IN ("TO DO")` {
		t.Fatalf("unexpected bugs JQL %q", jql)
	}
}

func TestJiraService_AllBugsSorted(t *testing.T) {
	t.Parallel()

	api := newMemJiraAPI()
	api.searchResult = []models.Issue{
		bugIssue("FA-3", "zebra", "FA-99"),
		bugIssue("FA-1", "Apple", "FA-100"),
		bugIssue("FA-2", "banana", "FA-100"),
	}

	svc := NewJiraService(api, "FA", testLogger())
	bugs, err := svc.AllBugs(context.Background())
	if err != nil {
		t.Fatalf("AllBugs: %v", err)
	}

	var keys []string
	for _, b := range bugs {
		keys = append(keys, b.Key)
	}
	want := []string{"FA-1", "FA-2", "FA-3"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, keys)
		}
	}
}

func bugIssue(key, summary, parent string) models.Issue {
	i := models.Issue{Key: key}
	i.Fields.Summary = summary
	i.Fields.Parent = &models.ParentRef{Key: parent}
	return i
}
