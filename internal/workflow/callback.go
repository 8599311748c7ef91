package workflow

import (
	"fmt"
	"strings"
)

// Action is a callback-button action kind
type Action string

const (
	ActionToggleGuest   Action = "toggle_guest"
	ActionConfirmGuests Action = "confirm_guests"
	ActionDeleteGuest   Action = "delete_guest"
	ActionAssignee      Action = "assignee"
	ActionToggleLabel   Action = "toggle_label"
	ActionConfirmLabels Action = "confirm_labels"
	ActionSetPriority   Action = "set_priority"
	ActionSetParent     Action = "set_parent"
)

// actionTakesArg declares the fixed grammar: which actions carry an
// argument after the colon and which stand alone
var actionTakesArg = map[Action]bool{
	ActionToggleGuest:   true,
	ActionConfirmGuests: false,
	ActionDeleteGuest:   true,
	ActionAssignee:      true,
	ActionToggleLabel:   true,
	ActionConfirmLabels: false,
	ActionSetPriority:   true,
	ActionSetParent:     true,
}

// Callback is a decoded inline-button payload
type Callback struct {
	Action Action
	Arg    string
}

// EncodeCallback renders a payload in the "<action>:<argument>" grammar
func EncodeCallback(action Action, arg string) string {
	if arg == "" {
		return string(action)
	}
	return fmt.Sprintf("%s:%s", action, arg)
}

// ParseCallback decodes an inline-button payload, rejecting malformed
// or unknown payloads explicitly
func ParseCallback(data string) (*Callback, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, fmt.Errorf("empty callback payload")
	}

	action, arg := data, ""
	if idx := strings.Index(data, ":"); idx >= 0 {
		action, arg = data[:idx], data[idx+1:]
	}

	takesArg, known := actionTakesArg[Action(action)]
	if !known {
		return nil, fmt.Errorf("unknown callback action: %q", action)
	}
	if takesArg && arg == "" {
		return nil, fmt.Errorf("callback action %q requires an argument", action)
	}
	if !takesArg && arg != "" {
		return nil, fmt.Errorf("callback action %q takes no argument", action)
	}

	return &Callback{Action: Action(action), Arg: arg}, nil
}
