package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"gmeet-jira-bot/internal/constants"
	apperrors "gmeet-jira-bot/internal/errors"
	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/internal/workflow"
)

// JiraAPI is the Jira REST surface the service depends on
type JiraAPI interface {
	SearchIssues(ctx context.Context, jql string, maxResults int) ([]models.Issue, error)
	CreateIssue(ctx context.Context, fields map[string]interface{}) (string, error)
	AddAttachment(ctx context.Context, issueKey, filePath string) error
}

// JiraService turns finished workflow records into tracker issues and
// runs the issue listing queries
type JiraService struct {
	client     JiraAPI
	projectKey string
	logger     *logrus.Logger
}

// NewJiraService creates a new Jira service
func NewJiraService(client JiraAPI, projectKey string, logger *logrus.Logger) *JiraService {
	return &JiraService{
		client:     client,
		projectKey: projectKey,
		logger:     logger,
	}
}

// IssueFields assembles the Jira field map for a finished task or bug
// record. Optional links are omitted entirely when they were skipped.
func (s *JiraService) IssueFields(record *workflow.Record) (map[string]interface{}, error) {
	issueType := "Task"
	if record.Workflow == workflow.BugWorkflow {
		issueType = "Bug"
	}

	priority := record.Fields.GetString(workflow.FieldPriority)
	if !contains(constants.JiraPriorities, priority) {
		return nil, &apperrors.ValidationError{Field: workflow.FieldPriority,
			Message: fmt.Sprintf("invalid priority %q", priority)}
	}

	labels := record.Fields.GetStrings(workflow.FieldLabels)
	for _, label := range labels {
		if !contains(constants.JiraLabels, label) {
			return nil, &apperrors.ValidationError{Field: workflow.FieldLabels,
				Message: fmt.Sprintf("invalid label %q", label)}
		}
	}

	fields := map[string]interface{}{
		"project":     map[string]string{"key": s.projectKey},
		"summary":     record.Fields.GetString(workflow.FieldTitle),
		"description": record.Fields.GetString(workflow.FieldDescription),
		"issuetype":   map[string]string{"name": issueType},
		"priority":    map[string]string{"name": priority},
	}

	if parent := record.Fields.GetString(workflow.FieldParent); parent != "" {
		fields["parent"] = map[string]string{"key": parent}
	}
	if len(labels) > 0 {
		fields["labels"] = labels
	}
	if accountID := record.Fields.GetString(workflow.FieldAssignee); accountID != "" {
		fields["assignee"] = map[string]string{"accountId": accountID}
	}
	if figma := record.Fields.GetString(workflow.FieldFigmaLink); figma != "" {
		fields[constants.FigmaLinkField] = figma
	}
	if confluence := record.Fields.GetString(workflow.FieldConfluenceLink); confluence != "" {
		fields[constants.ConfluenceLinkField] = confluence
	}

	return fields, nil
}

// CreateFromRecord creates the issue and uploads the record's
// attachments. Attachment failures are collected per file and do not
// abort the remaining uploads or roll back the created issue.
func (s *JiraService) CreateFromRecord(ctx context.Context, record *workflow.Record) (string, []error, error) {
	fields, err := s.IssueFields(record)
	if err != nil {
		return "", nil, err
	}

	key, err := s.client.CreateIssue(ctx, fields)
	if err != nil {
		return "", nil, err
	}

	var attachErrs []error
	for _, path := range record.Attachments {
		if err := s.client.AddAttachment(ctx, key, path); err != nil {
			s.logger.Errorf("Failed to attach %s to %s: %v", path, key, err)
			attachErrs = append(attachErrs, fmt.Errorf("failed to attach %s: %w", path, err))
			continue
		}
		if err := os.Remove(path); err != nil {
			s.logger.Warnf("Failed to remove uploaded attachment %s: %v", path, err)
		}
	}

	return key, attachErrs, nil
}

// ParentCandidates returns the epic keys offered as parents for new
// issues. The board keeps a fixed pair of planning epics.
func (s *JiraService) ParentCandidates() []string {
	return constants.ParentIssueKeys
}

// IssuesByAccount returns the account's issues in the open statuses
func (s *JiraService) IssuesByAccount(ctx context.Context, accountID string) ([]models.Issue, error) {
	return s.client.SearchIssues(ctx, BuildAssigneeJQL(accountID, constants.OpenStatuses), constants.MaxSearchResults)
}

// IssuesByStatus returns the project's issues with the given status
func (s *JiraService) IssuesByStatus(ctx context.Context, status string) ([]models.Issue, error) {
	return s.client.SearchIssues(ctx, BuildStatusJQL(status, s.projectKey), constants.MaxSearchResults)
}

// AllBugs returns the project's open bugs sorted by parent, summary,
// status and assignee display name
func (s *JiraService) AllBugs(ctx context.Context) ([]models.Issue, error) {
	issues, err := s.client.SearchIssues(ctx, BuildBugsJQL(s.projectKey, constants.OpenStatuses), constants.MaxBugResults)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(issues, func(i, j int) bool {
		a, b := &issues[i], &issues[j]
		if a.ParentKey() != b.ParentKey() {
			return a.ParentKey() < b.ParentKey()
		}
		if sa, sb := strings.ToLower(a.Fields.Summary), strings.ToLower(b.Fields.Summary); sa != sb {
			return sa < sb
		}
		if a.StatusName() != b.StatusName() {
			return a.StatusName() < b.StatusName()
		}
		return strings.ToLower(a.AssigneeName()) < strings.ToLower(b.AssigneeName())
	})

	return issues, nil
}

// BuildAssigneeJQL builds the query for one assignee across statuses
func BuildAssigneeJQL(accountID string, statuses []string) string {
	return fmt.Sprintf("assignee = %q AND status IN (%s)", accountID, quoteList(statuses))
}

// BuildStatusJQL builds the query for one status within a project
func BuildStatusJQL(status, projectKey string) string {
	var parts []string
	if status != "" {
		parts = append(parts, fmt.Sprintf("status = %q", status))
	}
	if projectKey != "" {
		parts = append(parts, fmt.Sprintf("project = %q", projectKey))
	}
	return strings.Join(parts, " AND ")
}

// BuildBugsJQL builds the query for open bugs within a project
func BuildBugsJQL(projectKey string, statuses []string) string {
	return fmt.Sprintf("project = %q AND issuetype = \"Bug\" AND status IN (%s)", projectKey, quoteList(statuses))
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
