package models

// Issue represents a Jira issue as returned by the search API
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the subset of Jira fields the bot displays
type IssueFields struct {
	Summary        string     `json:"summary"`
	Description    string     `json:"description"`
	Status         *Status    `json:"status,omitempty"`
	Assignee       *UserRef   `json:"assignee,omitempty"`
	Parent         *ParentRef `json:"parent,omitempty"`
	FigmaLink      string     `json:"customfield_10104,omitempty"`
	ConfluenceLink string     `json:"customfield_10105,omitempty"`
}

// Status represents a Jira issue status
type Status struct {
	Name string `json:"name"`
}

// UserRef represents a Jira user reference
type UserRef struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

// ParentRef represents a parent issue reference
type ParentRef struct {
	Key string `json:"key"`
}

// StatusName returns the status name or an empty string
func (i *Issue) StatusName() string {
	if i.Fields.Status == nil {
		return ""
	}
	return i.Fields.Status.Name
}

// AssigneeName returns the assignee display name or "Unassigned"
func (i *Issue) AssigneeName() string {
	if i.Fields.Assignee == nil {
		return "Unassigned"
	}
	return i.Fields.Assignee.DisplayName
}

// ParentKey returns the parent issue key or "No Parent"
func (i *Issue) ParentKey() string {
	if i.Fields.Parent == nil {
		return "No Parent"
	}
	return i.Fields.Parent.Key
}

// IssueRequest is the payload for creating a Jira issue
type IssueRequest struct {
	Fields map[string]interface{} `json:"fields"`
}
