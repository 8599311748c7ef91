package errors

import (
	"fmt"
)

// ValidationError represents an error when step input validation fails
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NotAuthorizedError represents an error when a chat has no stored credential
type NotAuthorizedError struct {
	ChatID int64
}

// Error returns the error message
func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("chat %d is not authorized with Google", e.ChatID)
}

// WorkflowActiveError represents an error when a chat starts a workflow
// while another one is still in progress
type WorkflowActiveError struct {
	ChatID   int64
	Workflow string
}

// Error returns the error message
func (e *WorkflowActiveError) Error() string {
	return fmt.Sprintf("chat %d already has an active %s workflow", e.ChatID, e.Workflow)
}

// IncompleteWorkflowError represents a missing required field at finish time
type IncompleteWorkflowError struct {
	Workflow string
	Field    string
}

// Error returns the error message
func (e *IncompleteWorkflowError) Error() string {
	return fmt.Sprintf("workflow %s is incomplete: missing field %s", e.Workflow, e.Field)
}

// RemoteError represents a failure reported by an external API
type RemoteError struct {
	Service   string
	Operation string
	Status    int
	Message   string
}

// Error returns the error message
func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s API error during %s (status %d): %s", e.Service, e.Operation, e.Status, e.Message)
}

// StateError represents an error related to conversation state
type StateError struct {
	ChatID  int64
	State   string
	Message string
}

// Error returns the error message
func (e *StateError) Error() string {
	return fmt.Sprintf("state error for chat %d in state %s: %s", e.ChatID, e.State, e.Message)
}

// ConfigError represents an error related to configuration
type ConfigError struct {
	Section string
	Message string
}

// Error returns the error message
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Section, e.Message)
}
