package keyboards

import (
	"reflect"
	"testing"

	"gmeet-jira-bot/internal/models"
)

func TestSelectGuests_Deterministic(t *testing.T) {
	t.Parallel()

	guests := []models.Guest{
		{ID: 1, Name: "Alex", Email: "alex@example.com"},
		{ID: 2, Name: "Kim", Email: "kim@example.com"},
		{ID: 3, Name: "Sam", Email: "sam@example.com"},
	}

	first := SelectGuests(guests, []string{"2"})
	second := SelectGuests(guests, []string{"2"})
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same catalog and selection must render identically")
	}

	// Two guests per row plus the confirm row
	if len(first.InlineKeyboard) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(first.InlineKeyboard))
	}
	if got := first.InlineKeyboard[0][0].Text; got != "Alex (alex@example.com) ❌" {
		t.Fatalf("unexpected unselected button text %q", got)
	}
	if got := first.InlineKeyboard[0][1].Text; got != "Kim (kim@example.com) ✅" {
		t.Fatalf("unexpected selected button text %q", got)
	}
	if got := first.InlineKeyboard[0][0].Data; got != "toggle_guest:1" {
		t.Fatalf("unexpected payload %q", got)
	}

	confirmRow := first.InlineKeyboard[2]
	if len(confirmRow) != 1 || confirmRow[0].Data != "confirm_guests" {
		t.Fatalf("unexpected confirm row %+v", confirmRow)
	}
}

func TestLabels_MarksSelection(t *testing.T) {
	t.Parallel()

	markup := Labels([]string{"design"})

	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected label row plus done row, got %d rows", len(markup.InlineKeyboard))
	}

	row := markup.InlineKeyboard[0]
	if row[0].Text != "backend ❌" || row[2].Text != "design ✅" {
		t.Fatalf("unexpected label marks: %q, %q", row[0].Text, row[2].Text)
	}
	if row[1].Data != "toggle_label:frontend" {
		t.Fatalf("unexpected payload %q", row[1].Data)
	}

	done := markup.InlineKeyboard[1][0]
	if done.Data != "confirm_labels" {
		t.Fatalf("unexpected done payload %q", done.Data)
	}
}

func TestPriorities_SortedByDisplayName(t *testing.T) {
	t.Parallel()

	markup := Priorities()
	if len(markup.InlineKeyboard) != 1 {
		t.Fatalf("expected a single row, got %d", len(markup.InlineKeyboard))
	}

	var got []string
	for _, btn := range markup.InlineKeyboard[0] {
		got = append(got, btn.Text)
	}
	want := []string{"High", "Highest", "Low", "Lowest", "Medium"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected priorities %v, got %v", want, got)
	}
}

func TestAssignees_TwoPerRow(t *testing.T) {
	t.Parallel()

	users := []models.JiraUser{
		{Name: "Alex", AccountID: "acc-1"},
		{Name: "Kim", AccountID: "acc-2"},
		{Name: "Sam", AccountID: "acc-3"},
	}

	markup := Assignees(users)
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(markup.InlineKeyboard))
	}
	if markup.InlineKeyboard[1][0].Data != "assignee:acc-3" {
		t.Fatalf("unexpected payload %q", markup.InlineKeyboard[1][0].Data)
	}
}

func TestParentIssues_CatalogOrder(t *testing.T) {
	t.Parallel()

	markup := ParentIssues([]string{"FA-100", "FA-99"})
	row := markup.InlineKeyboard[0]
	if row[0].Text != "FA-100" || row[1].Text != "FA-99" {
		t.Fatalf("parent keys must keep catalog order, got %q %q", row[0].Text, row[1].Text)
	}
	if row[1].Data != "set_parent:FA-99" {
		t.Fatalf("unexpected payload %q", row[1].Data)
	}
}
