package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"gmeet-jira-bot/pkg/analyticsclient"
)

// AnalyticsAPI is the GA Data API surface the service depends on
type AnalyticsAPI interface {
	RunReport(ctx context.Context, req *analyticsclient.ReportRequest) (*analyticsclient.Report, error)
}

// AnalyticsService runs the fixed set of daily product reports
type AnalyticsService struct {
	client AnalyticsAPI
	logger *logrus.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(client AnalyticsAPI, logger *logrus.Logger) *AnalyticsService {
	return &AnalyticsService{
		client: client,
		logger: logger,
	}
}

// ActiveUsersByCity reports active users per city over the last week
func (s *AnalyticsService) ActiveUsersByCity(ctx context.Context) (*analyticsclient.Report, error) {
	return s.client.RunReport(ctx, &analyticsclient.ReportRequest{
		Dimensions: []analyticsclient.Dimension{{Name: "city"}},
		Metrics:    []analyticsclient.Metric{{Name: "activeUsers"}},
		DateRanges: []analyticsclient.DateRange{{StartDate: "7daysAgo", EndDate: "today"}},
	})
}

// DailyRegistrations reports yesterday's register events
func (s *AnalyticsService) DailyRegistrations(ctx context.Context) (*analyticsclient.Report, error) {
	return s.client.RunReport(ctx, yesterdayEventReport(
		[]analyticsclient.Dimension{{Name: "date"}},
		stringFilter("register"),
	))
}

// DailyReferrals reports yesterday's referral events grouped by source
func (s *AnalyticsService) DailyReferrals(ctx context.Context) (*analyticsclient.Report, error) {
	return s.client.RunReport(ctx, yesterdayEventReport(
		[]analyticsclient.Dimension{{Name: "eventName"}, {Name: "customEvent:ref"}},
		stringFilter("ref"),
	))
}

// Onboarding reports yesterday's onboarding completions and skips
func (s *AnalyticsService) Onboarding(ctx context.Context) (*analyticsclient.Report, error) {
	return s.client.RunReport(ctx, yesterdayEventReport(
		[]analyticsclient.Dimension{{Name: "eventName"}},
		inListFilter("onboarding_complete", "onboarding_skip"),
	))
}

// WalletConnections reports yesterday's wallet connection events
func (s *AnalyticsService) WalletConnections(ctx context.Context) (*analyticsclient.Report, error) {
	return s.client.RunReport(ctx, yesterdayEventReport(
		[]analyticsclient.Dimension{{Name: "date"}},
		stringFilter("connect_wallet"),
	))
}

// ExercisePurchases reports yesterday's exercise purchase events
func (s *AnalyticsService) ExercisePurchases(ctx context.Context) (*analyticsclient.Report, error) {
	return s.client.RunReport(ctx, yesterdayEventReport(
		[]analyticsclient.Dimension{{Name: "eventName"}, {Name: "customEvent:alias"}, {Name: "customEvent:id"}},
		stringFilter("exercise_buy"),
	))
}

func yesterdayEventReport(dimensions []analyticsclient.Dimension, filter *analyticsclient.FilterExpression) *analyticsclient.ReportRequest {
	return &analyticsclient.ReportRequest{
		Dimensions:      dimensions,
		Metrics:         []analyticsclient.Metric{{Name: "eventCount"}},
		DateRanges:      []analyticsclient.DateRange{{StartDate: "yesterday", EndDate: "yesterday"}},
		DimensionFilter: filter,
	}
}

func stringFilter(eventName string) *analyticsclient.FilterExpression {
	return &analyticsclient.FilterExpression{
		Filter: &analyticsclient.Filter{
			FieldName:    "eventName",
			StringFilter: &analyticsclient.StringFilter{Value: eventName},
		},
	}
}

func inListFilter(eventNames ...string) *analyticsclient.FilterExpression {
	return &analyticsclient.FilterExpression{
		Filter: &analyticsclient.Filter{
			FieldName:    "eventName",
			InListFilter: &analyticsclient.InListFilter{Values: eventNames},
		},
	}
}
