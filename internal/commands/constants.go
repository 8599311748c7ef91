package commands

// TelegramCommands contains all commands for the Telegram bot
const (
	// Main commands
	Start   = "/start"
	Cancel  = "/cancel"
	Done    = "/done"
	Confirm = "/confirm"
	GroupID = "/group_id"

	// Google Meet commands
	GmeetAuth            = "/gmeet_auth"
	GmeetLink            = "/gmeet_link"
	GmeetScheduleMeeting = "/gmeet_schedule_meeting"
	GmeetAddGuest        = "/gmeet_add_guest"
	GmeetDeleteGuest     = "/gmeet_delete_guest"

	// Jira commands
	JiraCreateIssue   = "/jira_create_issue"
	JiraReportBug     = "/jira_report_bug"
	JiraMyIssues      = "/jira_my_issues"
	JiraUserIssues    = "/jira_user_issues"
	JiraReadyForTest  = "/jira_ready_for_test"
	JiraCurrentIssues = "/jira_current_issues"
	JiraAllBugs       = "/jira_all_bugs"

	// Google Analytics commands
	GaActiveUsers   = "/ga_active_users"
	GaRegistrations = "/ga_registrations"
	GaReferrals     = "/ga_referrals"
	GaOnboarding    = "/ga_onboarding"
	GaWallets       = "/ga_wallets"
	GaPurchases     = "/ga_purchases"

	// Skip is accepted as free text on optional link steps
	Skip = "skip"
)
