package services

import (
	"context"
	"fmt"

	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/pkg/calendarclient"
)

// memJiraAPI is a small in-memory Jira client used by unit tests.
type memJiraAPI struct {
	searchResult  []models.Issue
	searchErr     error
	searchedJQL   []string
	createdFields []map[string]interface{}
	createKey     string
	createErr     error
	attached      map[string][]string
	attachErr     map[string]error
}

func newMemJiraAPI() *memJiraAPI {
	return &memJiraAPI{
		createKey: "FA-123",
		attached:  make(map[string][]string),
		attachErr: make(map[string]error),
	}
}

func (m *memJiraAPI) SearchIssues(ctx context.Context, jql string, maxResults int) ([]models.Issue, error) {
	m.searchedJQL = append(m.searchedJQL, jql)
	return m.searchResult, m.searchErr
}

func (m *memJiraAPI) CreateIssue(ctx context.Context, fields map[string]interface{}) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.createdFields = append(m.createdFields, fields)
	return m.createKey, nil
}

func (m *memJiraAPI) AddAttachment(ctx context.Context, issueKey, filePath string) error {
	if err := m.attachErr[filePath]; err != nil {
		return err
	}
	m.attached[issueKey] = append(m.attached[issueKey], filePath)
	return nil
}

// memCalendarAPI records event creation calls.
type memCalendarAPI struct {
	createCalls []*calendarclient.Event
	createErr   error
	link        string
}

func newMemCalendarAPI() *memCalendarAPI {
	return &memCalendarAPI{link: "https://meet.google.com/abc-defg-hij"}
}

func (m *memCalendarAPI) AuthURL() string {
	return "https://accounts.google.com/o/oauth2/auth?test=1"
}

func (m *memCalendarAPI) Exchange(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("empty code")
	}
	return `{"access_token":"tok"}`, nil
}

func (m *memCalendarAPI) CreateEvent(ctx context.Context, tokenJSON string, event *calendarclient.Event) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.createCalls = append(m.createCalls, event)
	return m.link, nil
}
