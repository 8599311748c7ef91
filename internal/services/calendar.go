package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gmeet-jira-bot/internal/constants"
	apperrors "gmeet-jira-bot/internal/errors"
	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/internal/workflow"
	"gmeet-jira-bot/pkg/calendarclient"
)

// CalendarAPI is the Calendar client surface the service depends on
type CalendarAPI interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (string, error)
	CreateEvent(ctx context.Context, tokenJSON string, event *calendarclient.Event) (string, error)
}

// CalendarService schedules Google Meet sessions with per-chat
// credentials from the in-memory store
type CalendarService struct {
	client CalendarAPI
	creds  *CredentialStore
	logger *logrus.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(client CalendarAPI, creds *CredentialStore, logger *logrus.Logger) *CalendarService {
	return &CalendarService{
		client: client,
		creds:  creds,
		logger: logger,
	}
}

// AuthURL returns the consent URL for the OAuth flow
func (s *CalendarService) AuthURL() string {
	return s.client.AuthURL()
}

// CompleteAuth exchanges an authorization code and stores the resulting
// token for the chat
func (s *CalendarService) CompleteAuth(ctx context.Context, chatID int64, code string) error {
	tokenJSON, err := s.client.Exchange(ctx, code)
	if err != nil {
		return err
	}
	s.creds.Set(chatID, tokenJSON)
	return nil
}

// IsAuthorized reports whether the chat has completed the OAuth flow
func (s *CalendarService) IsAuthorized(chatID int64) bool {
	return s.creds.Has(chatID)
}

// ScheduleMeeting creates a calendar event with a Meet link on the
// chat's calendar. Guests become attendees; an empty guest list is a
// legal meeting with no invitees.
func (s *CalendarService) ScheduleMeeting(ctx context.Context, chatID int64, name, date, timeOfDay string, guests []models.Guest) (string, error) {
	tokenJSON, ok := s.creds.Get(chatID)
	if !ok {
		return "", &apperrors.NotAuthorizedError{ChatID: chatID}
	}

	start, err := time.Parse(constants.DateFormat+" "+constants.TimeFormat, date+" "+timeOfDay)
	if err != nil {
		return "", &apperrors.ValidationError{Field: "date", Message: err.Error()}
	}
	end := start.Add(constants.DefaultMeetingDurationHours * time.Hour)

	attendees := make([]calendarclient.Attendee, 0, len(guests))
	for _, guest := range guests {
		attendees = append(attendees, calendarclient.Attendee{Email: guest.Email})
	}

	event := &calendarclient.Event{
		Summary:     name,
		Description: "A Google Meet meeting created via the team bot.",
		Start:       eventTime(start),
		End:         eventTime(end),
		Attendees:   attendees,
		ConferenceData: &calendarclient.ConferenceData{
			CreateRequest: &calendarclient.CreateRequest{
				RequestID:             uuid.NewString(),
				ConferenceSolutionKey: &calendarclient.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	link, err := s.client.CreateEvent(ctx, tokenJSON, event)
	if err != nil {
		return "", err
	}

	s.logger.Infof("Scheduled meeting %q for chat %d: %s", name, chatID, link)
	return link, nil
}

// QuickLink creates an ad-hoc meeting starting now and returns its link
func (s *CalendarService) QuickLink(ctx context.Context, chatID int64) (string, error) {
	tokenJSON, ok := s.creds.Get(chatID)
	if !ok {
		return "", &apperrors.NotAuthorizedError{ChatID: chatID}
	}

	start := time.Now()
	event := &calendarclient.Event{
		Summary:   "Generated Google Meet",
		Start:     eventTime(start),
		End:       eventTime(start.Add(constants.DefaultMeetingDurationHours * time.Hour)),
		Attendees: []calendarclient.Attendee{},
		ConferenceData: &calendarclient.ConferenceData{
			CreateRequest: &calendarclient.CreateRequest{
				RequestID:             uuid.NewString(),
				ConferenceSolutionKey: &calendarclient.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	return s.client.CreateEvent(ctx, tokenJSON, event)
}

// eventTime renders a local wall-clock time with the meeting timezone
func eventTime(t time.Time) calendarclient.EventTime {
	return calendarclient.EventTime{
		DateTime: t.Format("2006-01-02T15:04:05"),
		TimeZone: constants.MeetingTimeZone,
	}
}

// MeetingFromRecord resolves a finished meeting workflow record
// against the guest catalog
func MeetingFromRecord(record *workflow.Record, guests []models.Guest) (name, date, timeOfDay string, selected []models.Guest) {
	name = record.Fields.GetString(workflow.FieldName)
	date = record.Fields.GetString(workflow.FieldDate)
	timeOfDay = record.Fields.GetString(workflow.FieldTime)

	wanted := make(map[string]bool)
	for _, id := range record.Fields.GetStrings(workflow.FieldGuests) {
		wanted[id] = true
	}
	for _, guest := range guests {
		if wanted[fmt.Sprintf("%d", guest.ID)] {
			selected = append(selected, guest)
		}
	}
	return name, date, timeOfDay, selected
}
