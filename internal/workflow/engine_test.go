package workflow

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	apperrors "gmeet-jira-bot/internal/errors"
	"gmeet-jira-bot/internal/models"
)

const testChat int64 = 42

func newTestEngine(authorized bool) *Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	creds := newMemCreds()
	if authorized {
		creds = newMemCreds(testChat)
	}
	return NewEngine(newMemSessionStore(), creds, logger)
}

func TestEngine_MeetingHappyPath(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)

	step, err := e.Start(testChat, MeetingWorkflow)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if step.ID != StepMeetingName {
		t.Fatalf("expected first step %s, got %s", StepMeetingName, step.ID)
	}

	result, err := e.Advance(testChat, "Weekly sync")
	if err != nil {
		t.Fatalf("Advance name: %v", err)
	}
	if result.Status != Advanced || result.Step.ID != StepMeetingDate {
		t.Fatalf("expected advance to %s, got %+v", StepMeetingDate, result)
	}

	if _, err := e.Advance(testChat, "2026-09-01"); err != nil {
		t.Fatalf("Advance date: %v", err)
	}
	if _, err := e.Advance(testChat, "14:30"); err != nil {
		t.Fatalf("Advance time: %v", err)
	}

	// Multi-select: toggle two guests, untoggle one, confirm
	if _, err := e.Toggle(testChat, "1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := e.Toggle(testChat, "2"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	selection, err := e.Toggle(testChat, "1")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if len(selection) != 1 || selection[0] != "2" {
		t.Fatalf("expected selection [2], got %v", selection)
	}

	result, err = e.ConfirmSelection(testChat)
	if err != nil {
		t.Fatalf("ConfirmSelection: %v", err)
	}
	if result.Status != Completed {
		t.Fatalf("expected Completed, got %v", result.Status)
	}

	record, err := e.Finish(testChat)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if record.Workflow != MeetingWorkflow {
		t.Fatalf("expected meeting record, got %s", record.Workflow)
	}
	if got := record.Fields.GetString(FieldName); got != "Weekly sync" {
		t.Fatalf("expected name %q, got %q", "Weekly sync", got)
	}
	if got := record.Fields.GetStrings(FieldGuests); len(got) != 1 || got[0] != "2" {
		t.Fatalf("expected guests [2], got %v", got)
	}

	if e.Active(testChat) {
		t.Fatal("expected state cleared after Finish")
	}
}

func TestEngine_EmptyGuestSelectionIsLegal(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, MeetingWorkflow)
	mustAdvance(t, e, "Standup")
	mustAdvance(t, e, "2026-09-02")
	mustAdvance(t, e, "09:00")

	result, err := e.ConfirmSelection(testChat)
	if err != nil {
		t.Fatalf("ConfirmSelection: %v", err)
	}
	if result.Status != Completed {
		t.Fatalf("expected Completed, got %v", result.Status)
	}

	record, err := e.Finish(testChat)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if guests := record.Fields.GetStrings(FieldGuests); len(guests) != 0 {
		t.Fatalf("expected empty guest list, got %v", guests)
	}
}

func TestEngine_MeetingRequiresCredential(t *testing.T) {
	t.Parallel()

	e := newTestEngine(false)

	_, err := e.Start(testChat, MeetingWorkflow)
	var notAuth *apperrors.NotAuthorizedError
	if !errors.As(err, &notAuth) {
		t.Fatalf("expected NotAuthorizedError, got %v", err)
	}
	if e.Active(testChat) {
		t.Fatal("no conversation should be created")
	}
}

func TestEngine_SecondWorkflowRejected(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, TaskWorkflow)

	_, err := e.Start(testChat, GuestWorkflow)
	var active *apperrors.WorkflowActiveError
	if !errors.As(err, &active) {
		t.Fatalf("expected WorkflowActiveError, got %v", err)
	}
	if active.Workflow != TaskWorkflow {
		t.Fatalf("expected active workflow %s, got %s", TaskWorkflow, active.Workflow)
	}

	// The original conversation is untouched
	_, step, ok := e.Current(testChat)
	if !ok || step.ID != StepTaskTitle {
		t.Fatalf("expected still at %s, got %v", StepTaskTitle, step)
	}
}

func TestEngine_CancelClearsStateAtAnyStep(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, TaskWorkflow)
	mustAdvance(t, e, "Fix login redirect")

	result, err := e.Advance(testChat, "/cancel")
	if err != nil {
		t.Fatalf("Advance /cancel: %v", err)
	}
	if result.Status != Cancelled {
		t.Fatalf("expected Cancelled, got %v", result.Status)
	}
	if e.Active(testChat) {
		t.Fatal("expected state cleared after cancel")
	}
}

func TestEngine_InvalidDateLeavesStepUnchanged(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, MeetingWorkflow)
	mustAdvance(t, e, "Planning")

	_, err := e.Advance(testChat, "2025-13-45")
	var invalid *apperrors.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, step, ok := e.Current(testChat)
	if !ok || step.ID != StepMeetingDate {
		t.Fatalf("expected still at %s, got %v", StepMeetingDate, step)
	}

	// Valid input still works afterwards
	if _, err := e.Advance(testChat, "2026-01-15"); err != nil {
		t.Fatalf("Advance after invalid input: %v", err)
	}
}

func TestEngine_ChoiceRejectsUnknownOption(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, TaskWorkflow)
	mustAdvance(t, e, "Add rate limiting")
	mustAdvance(t, e, "/done")           // empty description finalized
	mustAdvance(t, e, "acc-1")           // assignee, no declared set
	mustAdvance(t, e, "skip")            // figma
	mustAdvance(t, e, "skip")            // confluence
	if _, err := e.ConfirmSelection(testChat); err != nil {
		t.Fatalf("ConfirmSelection labels: %v", err)
	}

	_, err := e.Advance(testChat, "Urgent")
	var invalid *apperrors.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ValidationError for unknown priority, got %v", err)
	}

	_, step, _ := e.Current(testChat)
	if step.ID != StepTaskPriority {
		t.Fatalf("expected still at %s, got %s", StepTaskPriority, step.ID)
	}

	if _, err := e.Advance(testChat, "High"); err != nil {
		t.Fatalf("Advance valid priority: %v", err)
	}
}

func TestEngine_RuntimeOptionsRestrictChoice(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, TaskWorkflow)
	mustAdvance(t, e, "Ship dark mode")
	mustAdvance(t, e, "/done")

	if err := e.SetOptions(testChat, FieldAssignee, []string{"acc-1", "acc-2"}); err != nil {
		t.Fatalf("SetOptions: %v", err)
	}

	if _, err := e.Advance(testChat, "acc-3"); err == nil {
		t.Fatal("expected rejection of undeclared assignee")
	}
	if _, err := e.Advance(testChat, "acc-2"); err != nil {
		t.Fatalf("Advance declared assignee: %v", err)
	}
}

func TestEngine_TaskRecordOmitsSkippedLinks(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, TaskWorkflow)
	mustAdvance(t, e, "Improve onboarding")

	// Description accumulates across messages until /done
	result, err := e.Advance(testChat, "first line")
	if err != nil {
		t.Fatalf("Advance description: %v", err)
	}
	if result.Status != Accumulating {
		t.Fatalf("expected Accumulating, got %v", result.Status)
	}
	mustAdvance(t, e, "second line")
	mustAdvance(t, e, "/done")

	mustAdvance(t, e, "acc-1")
	mustAdvance(t, e, "skip")
	mustAdvance(t, e, "https://confluence.example.com/page")

	if _, err := e.Toggle(testChat, "backend"); err != nil {
		t.Fatalf("Toggle label: %v", err)
	}
	if _, err := e.ConfirmSelection(testChat); err != nil {
		t.Fatalf("ConfirmSelection labels: %v", err)
	}
	mustAdvance(t, e, "Medium")
	mustAdvance(t, e, "FA-100")

	result, err = e.Advance(testChat, "/confirm")
	if err != nil {
		t.Fatalf("Advance /confirm: %v", err)
	}
	if result.Status != Completed {
		t.Fatalf("expected Completed, got %v", result.Status)
	}

	record, err := e.Finish(testChat)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if record.Fields.Has(FieldFigmaLink) {
		t.Fatal("skipped figma link must be absent from the record")
	}
	if got := record.Fields.GetString(FieldConfluenceLink); got != "https://confluence.example.com/page" {
		t.Fatalf("unexpected confluence link %q", got)
	}
	if got := record.Fields.GetString(FieldDescription); got != "first line\nsecond line\n" {
		t.Fatalf("unexpected accumulated description %q", got)
	}
	if got := record.Fields.GetStrings(FieldLabels); len(got) != 1 || got[0] != "backend" {
		t.Fatalf("unexpected labels %v", got)
	}
}

func TestEngine_SeededBugWorkflow(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)

	step, err := e.StartSeeded(testChat, BugWorkflow, func(conv *models.Conversation) {
		conv.Fields.Set(FieldDescription, "crash on submit")
		conv.Attachments = []string{"/tmp/photo_1.jpg"}
	})
	if err != nil {
		t.Fatalf("StartSeeded: %v", err)
	}
	if step.ID != StepBugTitle {
		t.Fatalf("expected first step %s, got %s", StepBugTitle, step.ID)
	}

	mustAdvance(t, e, "Submit button crashes")
	mustAdvance(t, e, "acc-1")
	if _, err := e.ConfirmSelection(testChat); err != nil {
		t.Fatalf("ConfirmSelection labels: %v", err)
	}
	mustAdvance(t, e, "Highest")
	mustAdvance(t, e, "FA-99")
	mustAdvance(t, e, "/confirm")

	record, err := e.Finish(testChat)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if got := record.Fields.GetString(FieldDescription); got != "crash on submit" {
		t.Fatalf("seeded description lost: %q", got)
	}
	if len(record.Attachments) != 1 {
		t.Fatalf("seeded attachment lost: %v", record.Attachments)
	}
}

func TestEngine_FinishBeforeCompletionFails(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, GuestWorkflow)
	mustAdvance(t, e, "Alex")

	_, err := e.Finish(testChat)
	var state *apperrors.StateError
	if !errors.As(err, &state) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if e.Active(testChat) {
		t.Fatal("Finish must clear state even on failure")
	}
}

func TestEngine_ReviewAcceptsOnlyConfirm(t *testing.T) {
	t.Parallel()

	e := newTestEngine(true)
	mustStart(t, e, BugWorkflow)
	mustAdvance(t, e, "Broken layout")
	mustAdvance(t, e, "acc-1")
	if _, err := e.ConfirmSelection(testChat); err != nil {
		t.Fatalf("ConfirmSelection labels: %v", err)
	}
	mustAdvance(t, e, "Low")
	mustAdvance(t, e, "FA-100")

	if _, err := e.Advance(testChat, "looks good"); err == nil {
		t.Fatal("free text must be rejected at the review step")
	}

	result, err := e.Advance(testChat, "/confirm")
	if err != nil {
		t.Fatalf("Advance /confirm: %v", err)
	}
	if result.Status != Completed {
		t.Fatalf("expected Completed, got %v", result.Status)
	}
}

func mustStart(t *testing.T, e *Engine, workflowID string) {
	t.Helper()
	if _, err := e.Start(testChat, workflowID); err != nil {
		t.Fatalf("Start %s: %v", workflowID, err)
	}
}

func mustAdvance(t *testing.T, e *Engine, input string) {
	t.Helper()
	if _, err := e.Advance(testChat, input); err != nil {
		t.Fatalf("Advance %q: %v", input, err)
	}
}
