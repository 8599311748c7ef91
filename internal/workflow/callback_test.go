package workflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCallback_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		action Action
		arg    string
	}{
		{ActionToggleGuest, "17"},
		{ActionDeleteGuest, "3"},
		{ActionAssignee, "5b10ac8d82e05b22cc7d4ef5"},
		{ActionToggleLabel, "backend"},
		{ActionSetPriority, "Highest"},
		{ActionSetParent, "FA-100"},
		{ActionConfirmGuests, ""},
		{ActionConfirmLabels, ""},
	}

	for _, tc := range cases {
		payload := EncodeCallback(tc.action, tc.arg)
		cb, err := ParseCallback(payload)
		require.NoError(t, err, "payload %q", payload)
		require.Equal(t, tc.action, cb.Action)
		require.Equal(t, tc.arg, cb.Arg)
	}
}

func TestParseCallback_RejectsMalformed(t *testing.T) {
	t.Parallel()

	malformed := []string{
		"",
		"   ",
		"unknown_action",
		"unknown_action:5",
		"toggle_guest",     // argument required
		"toggle_guest:",    // empty argument
		"confirm_guests:5", // no argument allowed
		"set_priority",
	}

	for _, payload := range malformed {
		_, err := ParseCallback(payload)
		require.Error(t, err, "payload %q must be rejected", payload)
	}
}

func TestParseCallback_ArgumentMayContainColon(t *testing.T) {
	t.Parallel()

	cb, err := ParseCallback("toggle_label:a:b")
	require.NoError(t, err)
	require.Equal(t, ActionToggleLabel, cb.Action)
	require.Equal(t, "a:b", cb.Arg)
}
