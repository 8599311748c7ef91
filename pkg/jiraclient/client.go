package jiraclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"gmeet-jira-bot/internal/config"
	"gmeet-jira-bot/internal/constants"
	apperrors "gmeet-jira-bot/internal/errors"
	"gmeet-jira-bot/internal/models"
)

// Client represents a Jira REST API client
type Client struct {
	httpClient *resty.Client
	config     config.JiraConfig
	logger     *logrus.Logger
}

// searchResponse is the body returned by the search endpoint
type searchResponse struct {
	Issues []models.Issue `json:"issues"`
}

// createResponse is the body returned by the issue creation endpoint
type createResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// NewClient creates a new Jira API client. Searches are retried at the
// transport level; mutations are not.
func NewClient(jiraConfig config.JiraConfig, logger *logrus.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(constants.DefaultTimeout * time.Second).
		SetRetryCount(constants.DefaultRetryCount).
		SetRetryWaitTime(constants.DefaultRetryWaitTime * time.Second).
		SetRetryMaxWaitTime(constants.DefaultRetryMaxWaitTime * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.Request.Method == http.MethodGet && r.StatusCode() >= http.StatusInternalServerError
		}).
		SetBasicAuth(jiraConfig.Email, jiraConfig.APIToken).
		SetBaseURL(jiraConfig.BaseURL)

	return &Client{
		httpClient: httpClient,
		config:     jiraConfig,
		logger:     logger,
	}
}

// SearchIssues runs a JQL query and returns the matching issues
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]models.Issue, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"jql":        jql,
			"maxResults": fmt.Sprintf("%d", maxResults),
			"fields": fmt.Sprintf("summary,description,status,assignee,parent,%s,%s",
				constants.FigmaLinkField, constants.ConfluenceLinkField),
		}).
		Get("/rest/api/2/search")

	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("Jira search failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return nil, &apperrors.RemoteError{
			Service:   "Jira",
			Operation: "search",
			Status:    resp.StatusCode(),
			Message:   string(resp.Body()),
		}
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return result.Issues, nil
}

// CreateIssue creates an issue from the given field map and returns the
// new issue key. There is no retry; a failure is reported as-is.
func (c *Client) CreateIssue(ctx context.Context, fields map[string]interface{}) (string, error) {
	c.logger.Infof("Creating Jira issue: %v", fields["summary"])

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.IssueRequest{Fields: fields}).
		Post("/rest/api/2/issue")

	if err != nil {
		return "", fmt.Errorf("create issue request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("Jira create failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return "", &apperrors.RemoteError{
			Service:   "Jira",
			Operation: "create issue",
			Status:    resp.StatusCode(),
			Message:   string(resp.Body()),
		}
	}

	var result createResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse create response: %w", err)
	}

	c.logger.Infof("Created Jira issue %s", result.Key)
	return result.Key, nil
}

// AddAttachment uploads a local file as an attachment on an issue
func (c *Client) AddAttachment(ctx context.Context, issueKey, filePath string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Atlassian-Token", "no-check").
		SetFile("file", filePath).
		Post(fmt.Sprintf("/rest/api/2/issue/%s/attachments", issueKey))

	if err != nil {
		return fmt.Errorf("attachment request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("Jira attach failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return &apperrors.RemoteError{
			Service:   "Jira",
			Operation: "add attachment",
			Status:    resp.StatusCode(),
			Message:   string(resp.Body()),
		}
	}

	return nil
}
