package analyticsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"

	"gmeet-jira-bot/internal/config"
	"gmeet-jira-bot/internal/constants"
	apperrors "gmeet-jira-bot/internal/errors"
)

const baseURL = "https://analyticsdata.googleapis.com/v1beta"

// Client wraps the GA4 Data API runReport endpoint, authenticated with
// a service-account JWT
type Client struct {
	httpClient *resty.Client
	propertyID string
	logger     *logrus.Logger
}

// ReportRequest mirrors the runReport request body
type ReportRequest struct {
	Dimensions      []Dimension       `json:"dimensions,omitempty"`
	Metrics         []Metric          `json:"metrics"`
	DateRanges      []DateRange       `json:"dateRanges"`
	DimensionFilter *FilterExpression `json:"dimensionFilter,omitempty"`
}

// Dimension names one report dimension
type Dimension struct {
	Name string `json:"name"`
}

// Metric names one report metric
type Metric struct {
	Name string `json:"name"`
}

// DateRange bounds a report query; GA relative names are accepted
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// FilterExpression is a single-filter dimension filter
type FilterExpression struct {
	Filter *Filter `json:"filter"`
}

// Filter matches one dimension field against a string or a list
type Filter struct {
	FieldName    string        `json:"fieldName"`
	StringFilter *StringFilter `json:"stringFilter,omitempty"`
	InListFilter *InListFilter `json:"inListFilter,omitempty"`
}

// StringFilter matches a single value
type StringFilter struct {
	Value string `json:"value"`
}

// InListFilter matches any of the listed values
type InListFilter struct {
	Values []string `json:"values"`
}

// Report is the subset of the runReport response the bot formats
type Report struct {
	DimensionHeaders []Header `json:"dimensionHeaders"`
	MetricHeaders    []Header `json:"metricHeaders"`
	Rows             []Row    `json:"rows"`
}

// Header names one response column
type Header struct {
	Name string `json:"name"`
}

// Row is one response row of dimension and metric values
type Row struct {
	DimensionValues []Value `json:"dimensionValues"`
	MetricValues    []Value `json:"metricValues"`
}

// Value is one cell value
type Value struct {
	Value string `json:"value"`
}

// NewClient creates a GA4 Data API client from a service account file
func NewClient(cfg config.AnalyticsConfig, logger *logrus.Logger) (*Client, error) {
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read GA credentials file: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, constants.AnalyticsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GA credentials file: %w", err)
	}

	httpClient := resty.NewWithClient(jwtCfg.Client(context.Background())).
		SetTimeout(constants.DefaultTimeout * time.Second).
		SetRetryCount(constants.DefaultRetryCount).
		SetRetryWaitTime(constants.DefaultRetryWaitTime * time.Second).
		SetRetryMaxWaitTime(constants.DefaultRetryMaxWaitTime * time.Second).
		SetBaseURL(baseURL)

	return &Client{
		httpClient: httpClient,
		propertyID: cfg.PropertyID,
		logger:     logger,
	}, nil
}

// RunReport executes one report query against the configured property
func (c *Client) RunReport(ctx context.Context, req *ReportRequest) (*Report, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(fmt.Sprintf("/properties/%s:runReport", c.propertyID))

	if err != nil {
		return nil, fmt.Errorf("runReport request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Errorf("GA runReport failed - Status: %d, Response: %s", resp.StatusCode(), string(resp.Body()))
		return nil, &apperrors.RemoteError{
			Service:   "Analytics",
			Operation: "runReport",
			Status:    resp.StatusCode(),
			Message:   string(resp.Body()),
		}
	}

	var report Report
	if err := json.Unmarshal(resp.Body(), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report response: %w", err)
	}

	return &report, nil
}
