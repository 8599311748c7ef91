package services

import (
	"context"
	"errors"
	"testing"

	apperrors "gmeet-jira-bot/internal/errors"
	"gmeet-jira-bot/internal/models"
	"gmeet-jira-bot/internal/workflow"
)

func TestCalendarService_ScheduleMeeting(t *testing.T) {
	t.Parallel()

	api := newMemCalendarAPI()
	creds := NewCredentialStore(testLogger())
	creds.Set(7, `{"access_token":"tok"}`)

	svc := NewCalendarService(api, creds, testLogger())

	guests := []models.Guest{
		{ID: 1, Name: "Alex", Email: "alex@example.com"},
		{ID: 2, Name: "Kim", Email: "kim@example.com"},
	}

	link, err := svc.ScheduleMeeting(context.Background(), 7, "Planning", "2026-09-01", "14:30", guests)
	if err != nil {
		t.Fatalf("ScheduleMeeting: %v", err)
	}
	if link != api.link {
		t.Fatalf("expected link %q, got %q", api.link, link)
	}

	if len(api.createCalls) != 1 {
		t.Fatalf("expected exactly one event creation, got %d", len(api.createCalls))
	}
	event := api.createCalls[0]
	if event.Summary != "Planning" {
		t.Fatalf("unexpected summary %q", event.Summary)
	}
	if len(event.Attendees) != 2 || event.Attendees[0].Email != "alex@example.com" {
		t.Fatalf("unexpected attendees %+v", event.Attendees)
	}
	if event.Start.DateTime != "2026-09-01T14:30:00" {
		t.Fatalf("unexpected start %q", event.Start.DateTime)
	}
	if event.End.DateTime != "2026-09-01T15:30:00" {
		t.Fatalf("unexpected end %q", event.End.DateTime)
	}
	if event.ConferenceData == nil || event.ConferenceData.CreateRequest.RequestID == "" {
		t.Fatal("conference request must carry a unique id")
	}
}

func TestCalendarService_EmptyGuestListIsLegal(t *testing.T) {
	t.Parallel()

	api := newMemCalendarAPI()
	creds := NewCredentialStore(testLogger())
	creds.Set(7, `{"access_token":"tok"}`)

	svc := NewCalendarService(api, creds, testLogger())

	if _, err := svc.ScheduleMeeting(context.Background(), 7, "Solo", "2026-09-01", "10:00", nil); err != nil {
		t.Fatalf("ScheduleMeeting with no guests: %v", err)
	}
	if len(api.createCalls) != 1 {
		t.Fatalf("expected one event creation, got %d", len(api.createCalls))
	}
	if len(api.createCalls[0].Attendees) != 0 {
		t.Fatalf("expected no attendees, got %+v", api.createCalls[0].Attendees)
	}
}

func TestCalendarService_RequiresCredential(t *testing.T) {
	t.Parallel()

	svc := NewCalendarService(newMemCalendarAPI(), NewCredentialStore(testLogger()), testLogger())

	_, err := svc.ScheduleMeeting(context.Background(), 7, "Planning", "2026-09-01", "14:30", nil)
	var notAuth *apperrors.NotAuthorizedError
	if !errors.As(err, &notAuth) {
		t.Fatalf("expected NotAuthorizedError, got %v", err)
	}

	_, err = svc.QuickLink(context.Background(), 7)
	if !errors.As(err, &notAuth) {
		t.Fatalf("expected NotAuthorizedError, got %v", err)
	}
}

func TestCalendarService_CompleteAuthStoresCredential(t *testing.T) {
	t.Parallel()

	creds := NewCredentialStore(testLogger())
	svc := NewCalendarService(newMemCalendarAPI(), creds, testLogger())

	if svc.IsAuthorized(9) {
		t.Fatal("chat must start unauthorized")
	}
	if err := svc.CompleteAuth(context.Background(), 9, "auth-code"); err != nil {
		t.Fatalf("CompleteAuth: %v", err)
	}
	if !svc.IsAuthorized(9) {
		t.Fatal("credential must be stored after exchange")
	}
}

func TestMeetingFromRecord(t *testing.T) {
	t.Parallel()

	fields := models.NewFieldMap()
	fields.Set(workflow.FieldName, "Planning")
	fields.Set(workflow.FieldDate, "2026-09-01")
	fields.Set(workflow.FieldTime, "14:30")
	fields.Set(workflow.FieldGuests, []string{"2"})

	record := &workflow.Record{Workflow: workflow.MeetingWorkflow, Fields: fields}
	guests := []models.Guest{
		{ID: 1, Name: "Alex", Email: "alex@example.com"},
		{ID: 2, Name: "Kim", Email: "kim@example.com"},
	}

	name, date, timeOfDay, selected := MeetingFromRecord(record, guests)
	if name != "Planning" || date != "2026-09-01" || timeOfDay != "14:30" {
		t.Fatalf("unexpected meeting parameters %q %q %q", name, date, timeOfDay)
	}
	if len(selected) != 1 || selected[0].Email != "kim@example.com" {
		t.Fatalf("unexpected selected guests %+v", selected)
	}
}
