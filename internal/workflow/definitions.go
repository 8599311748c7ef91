package workflow

import (
	"gmeet-jira-bot/internal/constants"
)

// Workflow identifiers
const (
	MeetingWorkflow = "meeting"
	GuestWorkflow   = "guest"
	TaskWorkflow    = "task"
	BugWorkflow     = "bug"
)

// Field names used across workflows
const (
	FieldName           = "name"
	FieldDate           = "date"
	FieldTime           = "time"
	FieldGuests         = "guests"
	FieldEmail          = "email"
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldAssignee       = "assignee_account_id"
	FieldFigmaLink      = "figma_link"
	FieldConfluenceLink = "confluence_link"
	FieldLabels         = "labels"
	FieldPriority       = "priority"
	FieldParent         = "parent"
)

// Workflow is a named ordered sequence of data-collection steps ending
// in one external side effect. Definitions are static and immutable
// after process start.
type Workflow struct {
	Name               string
	RequiresCredential bool
	Steps              []Step
}

// StepAt returns the step at the given index
func (w *Workflow) StepAt(index int) *Step {
	if index < 0 || index >= len(w.Steps) {
		return nil
	}
	return &w.Steps[index]
}

var definitions = map[string]*Workflow{
	MeetingWorkflow: {
		Name:               MeetingWorkflow,
		RequiresCredential: true,
		Steps: []Step{
			{ID: StepMeetingName, Field: FieldName, Kind: KindText, Prompt: "Enter the meeting name:"},
			{ID: StepMeetingDate, Field: FieldDate, Kind: KindDate, Prompt: "Enter the meeting date (YYYY-MM-DD):"},
			{ID: StepMeetingTime, Field: FieldTime, Kind: KindTime, Prompt: "Enter the meeting time (HH:MM in 24-hour format):"},
			{ID: StepMeetingGuests, Field: FieldGuests, Kind: KindMultiSelect, Prompt: "Select guests for the meeting:"},
		},
	},
	GuestWorkflow: {
		Name: GuestWorkflow,
		Steps: []Step{
			{ID: StepGuestName, Field: FieldName, Kind: KindText, Prompt: "Enter guest's name:"},
			{ID: StepGuestEmail, Field: FieldEmail, Kind: KindText, Prompt: "Enter guest's email:"},
		},
	},
	TaskWorkflow: {
		Name: TaskWorkflow,
		Steps: []Step{
			{ID: StepTaskTitle, Field: FieldTitle, Kind: KindText, Prompt: "Enter the task title:"},
			{ID: StepTaskDescription, Field: FieldDescription, Kind: KindAccumulate,
				Prompt: "Enter the task description (you can also attach media like photos, code, or tables). Type /done when finished."},
			{ID: StepTaskAssignee, Field: FieldAssignee, Kind: KindChoice, Prompt: "Select an assignee:"},
			{ID: StepTaskFigmaLink, Field: FieldFigmaLink, Kind: KindOptionalLink,
				Prompt: "Enter the Figma link (or type `skip` if not applicable):"},
			{ID: StepTaskConfluenceLink, Field: FieldConfluenceLink, Kind: KindOptionalLink,
				Prompt: "Enter the Confluence link (or type `skip` if not applicable):"},
			{ID: StepTaskLabels, Field: FieldLabels, Kind: KindMultiSelect, Options: constants.JiraLabels,
				Prompt: "Select labels for the task:"},
			{ID: StepTaskPriority, Field: FieldPriority, Kind: KindChoice, Options: constants.JiraPriorities,
				Prompt: "Select priority for the task:"},
			{ID: StepTaskParent, Field: FieldParent, Kind: KindChoice, Prompt: "Select a parent issue:"},
			{ID: StepTaskReview, Kind: KindReview,
				Prompt: "Type /confirm to send the request or /cancel to discard."},
		},
	},
	BugWorkflow: {
		Name: BugWorkflow,
		Steps: []Step{
			{ID: StepBugTitle, Field: FieldTitle, Kind: KindText, Prompt: "Enter the title for the bug report:"},
			{ID: StepBugAssignee, Field: FieldAssignee, Kind: KindChoice, Prompt: "Select an assignee:"},
			{ID: StepBugLabels, Field: FieldLabels, Kind: KindMultiSelect, Options: constants.JiraLabels,
				Prompt: "Select labels for the bug report:"},
			{ID: StepBugPriority, Field: FieldPriority, Kind: KindChoice, Options: constants.JiraPriorities,
				Prompt: "Select priority for the bug report:"},
			{ID: StepBugParent, Field: FieldParent, Kind: KindChoice, Prompt: "Select a parent issue:"},
			{ID: StepBugReview, Kind: KindReview,
				Prompt: "Type /confirm to send the request or /cancel to discard."},
		},
	},
}

// Lookup returns the workflow definition for an identifier
func Lookup(name string) (*Workflow, bool) {
	w, ok := definitions[name]
	return w, ok
}
