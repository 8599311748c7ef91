package workflow

// StepID identifies one step of a workflow definition
type StepID int

const (
	// StepNone is the zero value, outside any workflow
	StepNone StepID = iota

	// Meeting scheduling steps
	StepMeetingName
	StepMeetingDate
	StepMeetingTime
	StepMeetingGuests

	// Guest registration steps
	StepGuestName
	StepGuestEmail

	// Task creation steps
	StepTaskTitle
	StepTaskDescription
	StepTaskAssignee
	StepTaskFigmaLink
	StepTaskConfluenceLink
	StepTaskLabels
	StepTaskPriority
	StepTaskParent
	StepTaskReview

	// Bug report steps
	StepBugTitle
	StepBugAssignee
	StepBugLabels
	StepBugPriority
	StepBugParent
	StepBugReview
)

var stepNames = map[StepID]string{
	StepNone:               "none",
	StepMeetingName:        "meeting_name",
	StepMeetingDate:        "meeting_date",
	StepMeetingTime:        "meeting_time",
	StepMeetingGuests:      "meeting_guests",
	StepGuestName:          "guest_name",
	StepGuestEmail:         "guest_email",
	StepTaskTitle:          "task_title",
	StepTaskDescription:    "task_description",
	StepTaskAssignee:       "task_assignee",
	StepTaskFigmaLink:      "task_figma_link",
	StepTaskConfluenceLink: "task_confluence_link",
	StepTaskLabels:         "task_labels",
	StepTaskPriority:       "task_priority",
	StepTaskParent:         "task_parent",
	StepTaskReview:         "task_review",
	StepBugTitle:           "bug_title",
	StepBugAssignee:        "bug_assignee",
	StepBugLabels:          "bug_labels",
	StepBugPriority:        "bug_priority",
	StepBugParent:          "bug_parent",
	StepBugReview:          "bug_review",
}

// String returns the step name for logging
func (id StepID) String() string {
	if name, ok := stepNames[id]; ok {
		return name
	}
	return "unknown"
}

// FieldKind classifies how a step's input is validated and collected
type FieldKind int

const (
	// KindText accepts any non-empty string, trimmed
	KindText FieldKind = iota
	// KindDate accepts a YYYY-MM-DD date
	KindDate
	// KindTime accepts an HH:MM 24-hour time
	KindTime
	// KindChoice accepts a value from an enumerated option set
	KindChoice
	// KindMultiSelect collects a toggle-style selection via inline buttons
	KindMultiSelect
	// KindAccumulate collects text and media across messages until /done
	KindAccumulate
	// KindOptionalLink accepts a link or the "skip" sentinel
	KindOptionalLink
	// KindReview shows the collected record and waits for /confirm
	KindReview
)

// Step is one entry of a workflow definition: the prompt shown to the
// user, the field it collects and how input is validated
type Step struct {
	ID      StepID
	Field   string
	Prompt  string
	Kind    FieldKind
	Options []string
}

// Required reports whether the step's field must be present at finish
func (s *Step) Required() bool {
	switch s.Kind {
	case KindOptionalLink, KindReview:
		return false
	}
	return s.Field != ""
}
