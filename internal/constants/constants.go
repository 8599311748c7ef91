package constants

const (
	// Network constants
	DefaultTimeout          = 30
	DefaultRetryCount       = 3
	DefaultRetryWaitTime    = 5
	DefaultRetryMaxWaitTime = 20

	// Cache constants
	SessionExpiration      = 30 // minutes
	SessionCleanupInterval = 10 // minutes

	// Formatting constants
	TimestampFormat = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
	TimeFormat      = "15:04"

	// Meeting constants
	DefaultMeetingDurationHours = 1
	MeetingTimeZone             = "Europe/Kyiv"

	// Jira constants
	DefaultProjectKey = "FA"
	MaxSearchResults  = 100
	MaxBugResults     = 1000

	// Jira custom fields carrying design/doc links
	FigmaLinkField      = "customfield_10104"
	ConfluenceLinkField = "customfield_10105"

	// OAuth constants
	DefaultOAuthHost = "localhost"
	DefaultOAuthPort = 8081
	CalendarScope    = "https://www.googleapis.com/auth/calendar"
	AnalyticsScope   = "https://www.googleapis.com/auth/analytics.readonly"
)

// JiraPriorities are the priority names accepted by the tracker
var JiraPriorities = []string{"Highest", "High", "Medium", "Low", "Lowest"}

// JiraLabels are the labels accepted on created issues
var JiraLabels = []string{"backend", "frontend", "design"}

// OpenStatuses are the statuses treated as "current work" in listings
var OpenStatuses = []string{"TO DO", "IN PROGRESS", "IN REVIEW"}

// Board statuses used by the listing commands
const (
	StatusOnDev      = "ON DEV"
	StatusInProgress = "IN PROGRESS"
)

// ParentIssueKeys are the epics offered as parents for new issues
var ParentIssueKeys = []string{"FA-100", "FA-99"}
