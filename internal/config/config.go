package config

// Config represents the application configuration
type Config struct {
	Telegram  TelegramConfig
	Jira      JiraConfig
	Google    GoogleConfig
	Analytics AnalyticsConfig
	Database  DatabaseConfig
	LogLevel  string
}

// TelegramConfig holds the Telegram bot configuration
type TelegramConfig struct {
	Token        string
	AllowedUsers []int64
	AllowedChats []int64
}

// JiraConfig holds the Jira REST API configuration
type JiraConfig struct {
	BaseURL    string
	Email      string
	APIToken   string
	ProjectKey string
}

// GoogleConfig holds the Google OAuth configuration for Calendar access
type GoogleConfig struct {
	CredentialsFile string
	OAuthHost       string
	OAuthPort       int
}

// AnalyticsConfig holds the Google Analytics Data API configuration
type AnalyticsConfig struct {
	PropertyID      string
	CredentialsFile string
}

// DatabaseConfig holds the relational store configuration
type DatabaseConfig struct {
	URL string
}
