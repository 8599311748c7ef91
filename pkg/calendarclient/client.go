package calendarclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gmeet-jira-bot/internal/constants"
	apperrors "gmeet-jira-bot/internal/errors"
)

const eventsURL = "https://www.googleapis.com/calendar/v3/calendars/primary/events"

// Client wraps the Google Calendar events API and the OAuth flow used
// to obtain per-chat credentials
type Client struct {
	httpClient *resty.Client
	oauthCfg   *oauth2.Config
	logger     *logrus.Logger
}

// Event is the Calendar event payload with a Meet conference request
type Event struct {
	Summary        string          `json:"summary"`
	Description    string          `json:"description,omitempty"`
	Start          EventTime       `json:"start"`
	End            EventTime       `json:"end"`
	Attendees      []Attendee      `json:"attendees"`
	ConferenceData *ConferenceData `json:"conferenceData,omitempty"`
}

// EventTime is a Calendar date-time with an explicit timezone
type EventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// Attendee is one invited email address
type Attendee struct {
	Email string `json:"email"`
}

// ConferenceData requests a Meet link on event creation
type ConferenceData struct {
	CreateRequest *CreateRequest `json:"createRequest"`
}

// CreateRequest identifies one conference creation attempt
type CreateRequest struct {
	RequestID             string                 `json:"requestId"`
	ConferenceSolutionKey *ConferenceSolutionKey `json:"conferenceSolutionKey"`
}

// ConferenceSolutionKey selects the conference type
type ConferenceSolutionKey struct {
	Type string `json:"type"`
}

// eventResponse is the subset of the created event the bot reads back
type eventResponse struct {
	HangoutLink    string `json:"hangoutLink"`
	ConferenceData struct {
		EntryPoints []struct {
			URI string `json:"uri"`
		} `json:"entryPoints"`
	} `json:"conferenceData"`
}

// NewClient creates a Calendar client from an OAuth client secrets file
func NewClient(credentialsFile, redirectURL string, logger *logrus.Logger) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read Google credentials file: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(data, constants.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Google credentials file: %w", err)
	}
	oauthCfg.RedirectURL = redirectURL

	httpClient := resty.New().
		SetTimeout(constants.DefaultTimeout * time.Second)

	return &Client{
		httpClient: httpClient,
		oauthCfg:   oauthCfg,
		logger:     logger,
	}, nil
}

// AuthURL returns the consent URL a user must visit to authorize the bot
func (c *Client) AuthURL() string {
	return c.oauthCfg.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a token and returns it as
// JSON suitable for the in-memory credential store
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	token, err := c.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("failed to encode token: %w", err)
	}

	return string(tokenJSON), nil
}

// CreateEvent inserts an event with a Meet conference request on the
// user's primary calendar and returns the Meet link
func (c *Client) CreateEvent(ctx context.Context, tokenJSON string, event *Event) (string, error) {
	accessToken, err := c.accessToken(ctx, tokenJSON)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("conferenceDataVersion", "1").
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post(eventsURL)

	if err != nil {
		return "", fmt.Errorf("create event request failed: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		return "", &apperrors.RemoteError{
			Service:   "Calendar",
			Operation: "create event",
			Status:    resp.StatusCode(),
			Message:   "authorization expired, run /gmeet_auth again",
		}
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("Calendar insert failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return "", &apperrors.RemoteError{
			Service:   "Calendar",
			Operation: "create event",
			Status:    resp.StatusCode(),
			Message:   string(resp.Body()),
		}
	}

	var created eventResponse
	if err := json.Unmarshal(resp.Body(), &created); err != nil {
		return "", fmt.Errorf("failed to parse event response: %w", err)
	}

	if created.HangoutLink != "" {
		return created.HangoutLink, nil
	}
	if len(created.ConferenceData.EntryPoints) > 0 {
		return created.ConferenceData.EntryPoints[0].URI, nil
	}
	return "", fmt.Errorf("created event carries no Meet link")
}

// accessToken refreshes the stored token if needed and returns a live
// access token
func (c *Client) accessToken(ctx context.Context, tokenJSON string) (string, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(tokenJSON), &token); err != nil {
		return "", fmt.Errorf("failed to decode stored token: %w", err)
	}

	fresh, err := c.oauthCfg.TokenSource(ctx, &token).Token()
	if err != nil {
		return "", &apperrors.RemoteError{
			Service:   "Calendar",
			Operation: "refresh token",
			Status:    http.StatusUnauthorized,
			Message:   err.Error(),
		}
	}

	return fresh.AccessToken, nil
}
