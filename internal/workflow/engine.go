package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"gmeet-jira-bot/internal/commands"
	"gmeet-jira-bot/internal/constants"
	apperrors "gmeet-jira-bot/internal/errors"
	"gmeet-jira-bot/internal/models"
)

// SessionStore holds at most one conversation per chat
type SessionStore interface {
	Get(chatID int64) (*models.Conversation, bool)
	Set(chatID int64, conv *models.Conversation)
	Clear(chatID int64)
}

// CredentialChecker reports whether a chat has a stored Google credential
type CredentialChecker interface {
	Has(chatID int64) bool
}

// Status is the outcome of an engine call
type Status int

const (
	// Advanced means the conversation moved to the returned step
	Advanced Status = iota
	// Accumulating means the input was absorbed without advancing
	Accumulating
	// Completed means the last step finished; Finish may now be called
	Completed
	// Cancelled means the conversation was cleared by the cancel sentinel
	Cancelled
)

// Result is the outcome of Advance or ConfirmSelection
type Result struct {
	Status Status
	Step   *Step
}

// Record is the finished output of a workflow: the collected fields in
// insertion order plus any accumulated attachment references
type Record struct {
	Workflow    string
	Fields      *models.FieldMap
	Attachments []string
}

// Engine drives chats through workflow definitions, one conversation
// per chat. Calls for the same chat must be serialized by the caller;
// the engine holds no per-conversation locks.
type Engine struct {
	store  SessionStore
	creds  CredentialChecker
	logger *logrus.Logger
}

// NewEngine creates a new workflow engine
func NewEngine(store SessionStore, creds CredentialChecker, logger *logrus.Logger) *Engine {
	return &Engine{
		store:  store,
		creds:  creds,
		logger: logger,
	}
}

// Start initializes an empty conversation at the workflow's first step.
// It fails with NotAuthorizedError when the workflow requires a Google
// credential and none is stored for the chat, and with
// WorkflowActiveError when the chat already has a conversation.
func (e *Engine) Start(chatID int64, workflowID string) (*Step, error) {
	return e.StartSeeded(chatID, workflowID, nil)
}

// StartSeeded is Start with a hook to pre-fill conversation data, used
// by the bug workflow to seed the description and attachments from a
// replied-to message.
func (e *Engine) StartSeeded(chatID int64, workflowID string, seed func(*models.Conversation)) (*Step, error) {
	wf, ok := Lookup(workflowID)
	if !ok {
		return nil, fmt.Errorf("unknown workflow: %s", workflowID)
	}

	if conv, active := e.store.Get(chatID); active {
		return nil, &apperrors.WorkflowActiveError{ChatID: chatID, Workflow: conv.Workflow}
	}

	if wf.RequiresCredential && !e.creds.Has(chatID) {
		return nil, &apperrors.NotAuthorizedError{ChatID: chatID}
	}

	conv := models.NewConversation(workflowID)
	if seed != nil {
		seed(conv)
	}
	e.store.Set(chatID, conv)

	step := wf.StepAt(0)
	e.logger.Debugf("Started %s workflow for chat %d at step %s", workflowID, chatID, step.ID)
	return step, nil
}

// Active reports whether the chat has a conversation in progress
func (e *Engine) Active(chatID int64) bool {
	_, ok := e.store.Get(chatID)
	return ok
}

// Current returns the chat's workflow and current step
func (e *Engine) Current(chatID int64) (*Workflow, *Step, bool) {
	conv, ok := e.store.Get(chatID)
	if !ok {
		return nil, nil, false
	}
	wf, ok := Lookup(conv.Workflow)
	if !ok {
		return nil, nil, false
	}
	return wf, wf.StepAt(conv.StepIndex), true
}

// Conversation returns the chat's raw conversation state
func (e *Engine) Conversation(chatID int64) (*models.Conversation, bool) {
	return e.store.Get(chatID)
}

// SetOptions declares the allowed option set for a runtime-resolved
// enumerated step, e.g. assignees loaded from the database.
func (e *Engine) SetOptions(chatID int64, field string, options []string) error {
	conv, ok := e.store.Get(chatID)
	if !ok {
		return &apperrors.StateError{ChatID: chatID, State: "none", Message: "no active workflow"}
	}
	conv.Options[field] = options
	e.store.Set(chatID, conv)
	return nil
}

// Advance feeds one free-text or callback input into the chat's current
// step. The cancel sentinel clears state at any step. Invalid input
// returns a ValidationError and leaves the step unchanged.
func (e *Engine) Advance(chatID int64, input string) (*Result, error) {
	conv, ok := e.store.Get(chatID)
	if !ok {
		return nil, &apperrors.StateError{ChatID: chatID, State: "none", Message: "no active workflow"}
	}

	wf, ok := Lookup(conv.Workflow)
	if !ok {
		e.store.Clear(chatID)
		return nil, fmt.Errorf("unknown workflow in state: %s", conv.Workflow)
	}

	if strings.TrimSpace(input) == commands.Cancel {
		e.store.Clear(chatID)
		e.logger.Debugf("Chat %d cancelled %s workflow", chatID, conv.Workflow)
		return &Result{Status: Cancelled}, nil
	}

	step := wf.StepAt(conv.StepIndex)
	if step == nil {
		return nil, &apperrors.StateError{ChatID: chatID, State: conv.Workflow,
			Message: fmt.Sprintf("step index %d out of range", conv.StepIndex)}
	}

	switch step.Kind {
	case KindText:
		text := strings.TrimSpace(input)
		if text == "" {
			return nil, &apperrors.ValidationError{Field: step.Field, Message: "value must not be empty"}
		}
		conv.Fields.Set(step.Field, text)

	case KindDate:
		text := strings.TrimSpace(input)
		if _, err := time.Parse(constants.DateFormat, text); err != nil {
			return nil, &apperrors.ValidationError{Field: step.Field,
				Message: fmt.Sprintf("%q is not a valid date, expected YYYY-MM-DD", text)}
		}
		conv.Fields.Set(step.Field, text)

	case KindTime:
		text := strings.TrimSpace(input)
		if _, err := time.Parse(constants.TimeFormat, text); err != nil {
			return nil, &apperrors.ValidationError{Field: step.Field,
				Message: fmt.Sprintf("%q is not a valid time, expected HH:MM in 24-hour format", text)}
		}
		conv.Fields.Set(step.Field, text)

	case KindChoice:
		value := strings.TrimSpace(input)
		if !e.optionAllowed(conv, step, value) {
			return nil, &apperrors.ValidationError{Field: step.Field,
				Message: fmt.Sprintf("%q is not one of the available options", value)}
		}
		conv.Fields.Set(step.Field, value)

	case KindOptionalLink:
		text := strings.TrimSpace(input)
		if text == "" {
			return nil, &apperrors.ValidationError{Field: step.Field,
				Message: "enter a link or type `skip`"}
		}
		if !strings.EqualFold(text, commands.Skip) {
			conv.Fields.Set(step.Field, text)
		}

	case KindAccumulate:
		if strings.TrimSpace(input) == commands.Done {
			// Finalize whatever accumulated, possibly empty
			conv.Fields.Set(step.Field, conv.Fields.GetString(step.Field))
			break
		}
		conv.Fields.Append(step.Field, input+"\n")
		e.store.Set(chatID, conv)
		return &Result{Status: Accumulating, Step: step}, nil

	case KindMultiSelect:
		return nil, &apperrors.ValidationError{Field: step.Field,
			Message: "use the buttons to make a selection, then confirm"}

	case KindReview:
		if strings.TrimSpace(input) == commands.Confirm {
			conv.StepIndex++
			e.store.Set(chatID, conv)
			return &Result{Status: Completed}, nil
		}
		return nil, &apperrors.ValidationError{Field: "review",
			Message: "type /confirm to send the request or /cancel to discard"}
	}

	return e.advanceStep(chatID, conv, wf)
}

// AppendAttachment records a media reference on an accumulating step
func (e *Engine) AppendAttachment(chatID int64, ref string) error {
	conv, ok := e.store.Get(chatID)
	if !ok {
		return &apperrors.StateError{ChatID: chatID, State: "none", Message: "no active workflow"}
	}
	conv.Attachments = append(conv.Attachments, ref)
	e.store.Set(chatID, conv)
	return nil
}

// Toggle flips membership of an item in the chat's pending selection
// and returns the new selection. It never advances the step.
func (e *Engine) Toggle(chatID int64, item string) ([]string, error) {
	conv, ok := e.store.Get(chatID)
	if !ok {
		return nil, &apperrors.StateError{ChatID: chatID, State: "none", Message: "no active workflow"}
	}

	selection := conv.ToggleSelection(item)
	e.store.Set(chatID, conv)
	return selection, nil
}

// ConfirmSelection stores the pending selection, possibly empty, under
// the current multi-select step's field and advances.
func (e *Engine) ConfirmSelection(chatID int64) (*Result, error) {
	conv, ok := e.store.Get(chatID)
	if !ok {
		return nil, &apperrors.StateError{ChatID: chatID, State: "none", Message: "no active workflow"}
	}

	wf, ok := Lookup(conv.Workflow)
	if !ok {
		e.store.Clear(chatID)
		return nil, fmt.Errorf("unknown workflow in state: %s", conv.Workflow)
	}

	step := wf.StepAt(conv.StepIndex)
	if step == nil || step.Kind != KindMultiSelect {
		return nil, &apperrors.StateError{ChatID: chatID, State: conv.Workflow,
			Message: "current step is not a selection step"}
	}

	conv.Fields.Set(step.Field, conv.SelectedItems())
	conv.Selection = make(map[string]bool)
	return e.advanceStep(chatID, conv, wf)
}

// Finish assembles the collected fields into the workflow's output
// record and clears state. It fails with IncompleteWorkflowError when a
// required field is absent; state is cleared regardless.
func (e *Engine) Finish(chatID int64) (*Record, error) {
	conv, ok := e.store.Get(chatID)
	if !ok {
		return nil, &apperrors.StateError{ChatID: chatID, State: "none", Message: "no active workflow"}
	}
	defer e.store.Clear(chatID)

	wf, ok := Lookup(conv.Workflow)
	if !ok {
		return nil, fmt.Errorf("unknown workflow in state: %s", conv.Workflow)
	}

	if conv.StepIndex < len(wf.Steps) {
		return nil, &apperrors.StateError{ChatID: chatID, State: conv.Workflow,
			Message: fmt.Sprintf("workflow not completed, at step %s", wf.Steps[conv.StepIndex].ID)}
	}

	for i := range wf.Steps {
		step := &wf.Steps[i]
		if step.Required() && !conv.Fields.Has(step.Field) {
			e.logger.Errorf("Chat %d finished %s workflow without field %s", chatID, conv.Workflow, step.Field)
			return nil, &apperrors.IncompleteWorkflowError{Workflow: conv.Workflow, Field: step.Field}
		}
	}

	return &Record{
		Workflow:    conv.Workflow,
		Fields:      conv.Fields,
		Attachments: conv.Attachments,
	}, nil
}

// Cancel clears the chat's conversation unconditionally
func (e *Engine) Cancel(chatID int64) {
	e.store.Clear(chatID)
}

// advanceStep moves the conversation to the next step in the
// definition's ordering, or to Completed after the last step
func (e *Engine) advanceStep(chatID int64, conv *models.Conversation, wf *Workflow) (*Result, error) {
	conv.StepIndex++
	e.store.Set(chatID, conv)

	if conv.StepIndex >= len(wf.Steps) {
		e.logger.Debugf("Chat %d completed %s workflow", chatID, conv.Workflow)
		return &Result{Status: Completed}, nil
	}

	next := wf.StepAt(conv.StepIndex)
	e.logger.Debugf("Chat %d advanced to step %s", chatID, next.ID)
	return &Result{Status: Advanced, Step: next}, nil
}

// optionAllowed checks a choice value against the step's static option
// set or, for runtime-resolved steps, the conversation's declared set
func (e *Engine) optionAllowed(conv *models.Conversation, step *Step, value string) bool {
	if value == "" {
		return false
	}

	options := step.Options
	if len(options) == 0 {
		options = conv.Options[step.Field]
	}
	if len(options) == 0 {
		// No declared set; accept any non-empty value
		return true
	}

	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
