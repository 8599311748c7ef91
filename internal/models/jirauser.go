package models

// JiraUser links a team member's Telegram identity to a Jira account
type JiraUser struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	TelegramID int64  `json:"telegram_id"`
	Email      string `json:"email"`
	AccountID  string `json:"account_id"`
}
