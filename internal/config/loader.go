package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"gmeet-jira-bot/internal/constants"
)

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	// Set default values
	v.SetDefault("log_level", "info")
	v.SetDefault("JIRA_PROJECT_KEY", constants.DefaultProjectKey)
	v.SetDefault("OAUTH_HOST", constants.DefaultOAuthHost)
	v.SetDefault("OAUTH_PORT", constants.DefaultOAuthPort)

	// Define environment variables
	v.BindEnv("TG_TOKEN")
	v.BindEnv("ALLOWED_USERS")
	v.BindEnv("ALLOWED_CHATS")
	v.BindEnv("JIRA_BASE_URL")
	v.BindEnv("JIRA_EMAIL")
	v.BindEnv("JIRA_API_TOKEN")
	v.BindEnv("JIRA_PROJECT_KEY")
	v.BindEnv("GM_CREDENTIALS")
	v.BindEnv("GA_CREDENTIALS")
	v.BindEnv("GA_PROPERTY_ID")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("OAUTH_HOST")
	v.BindEnv("OAUTH_PORT")

	cfg := &Config{
		LogLevel: v.GetString("log_level"),
		Telegram: TelegramConfig{
			Token:        v.GetString("TG_TOKEN"),
			AllowedUsers: parseIDList(v.GetString("ALLOWED_USERS")),
			AllowedChats: parseIDList(v.GetString("ALLOWED_CHATS")),
		},
		Jira: JiraConfig{
			BaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("JIRA_BASE_URL")), "/"),
			Email:      strings.TrimSpace(v.GetString("JIRA_EMAIL")),
			APIToken:   strings.TrimSpace(v.GetString("JIRA_API_TOKEN")),
			ProjectKey: strings.TrimSpace(v.GetString("JIRA_PROJECT_KEY")),
		},
		Google: GoogleConfig{
			CredentialsFile: strings.TrimSpace(v.GetString("GM_CREDENTIALS")),
			OAuthHost:       v.GetString("OAUTH_HOST"),
			OAuthPort:       v.GetInt("OAUTH_PORT"),
		},
		Analytics: AnalyticsConfig{
			PropertyID:      strings.TrimSpace(v.GetString("GA_PROPERTY_ID")),
			CredentialsFile: strings.TrimSpace(v.GetString("GA_CREDENTIALS")),
		},
		Database: DatabaseConfig{
			URL: strings.TrimSpace(v.GetString("DATABASE_URL")),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseIDList parses a comma-separated list of Telegram IDs
func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		var id int64
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &id); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return errors.New("TG_TOKEN is required")
	}

	if len(cfg.Telegram.AllowedUsers) == 0 && len(cfg.Telegram.AllowedChats) == 0 {
		return errors.New("ALLOWED_USERS or ALLOWED_CHATS is required")
	}

	if cfg.Jira.BaseURL == "" {
		return errors.New("JIRA_BASE_URL is required")
	}
	if cfg.Jira.Email == "" {
		return errors.New("JIRA_EMAIL is required")
	}
	if cfg.Jira.APIToken == "" {
		return errors.New("JIRA_API_TOKEN is required")
	}

	if cfg.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}

	if cfg.Google.OAuthPort <= 0 || cfg.Google.OAuthPort > 65535 {
		return fmt.Errorf("invalid OAUTH_PORT: %d", cfg.Google.OAuthPort)
	}

	return nil
}
