// Package analytics implements the client for the external feedback analysis
// service. Aggregation, sentiment classification, and keyword extraction all
// happen in that service; this package only queries the read models the
// dashboard needs.
package analytics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/feedbackhq/feedback-backend/types"
	"github.com/machinebox/graphql"
)

// Client queries the analytics GraphQL API. Constructed once at startup and
// shared by all dashboard requests.
type Client struct {
	gql *graphql.Client
}

// ClientOption configures the client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// NewClient creates a new analytics client for the given GraphQL endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	options := &clientOptions{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Client{
		gql: graphql.NewClient(endpoint, graphql.WithHTTPClient(options.httpClient)),
	}
}

const feedbackAnalysisQuery = `
query {
	feedbackAnalysis {
		averageRating
		totalFeedback
		feedbackTypeCounts { key value }
		sentimentCounts { key value }
	}
}`

const serviceAnalysisQuery = `
query ServiceAnalysis($service: String!) {
	serviceAnalysis(service: $service) {
		service
		totalFeedback
		averageRating
		averageSentiment
		sentimentBreakdown { positive neutral negative }
		topKeywords
	}
}`

// Analysis returns the aggregate analysis across all feedback.
func (c *Client) Analysis(ctx context.Context) (*types.FeedbackAnalysis, error) {
	req := graphql.NewRequest(feedbackAnalysisQuery)

	var resp struct {
		FeedbackAnalysis types.FeedbackAnalysis `json:"feedbackAnalysis"`
	}

	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("feedback analysis query failed: %w", err)
	}

	return &resp.FeedbackAnalysis, nil
}

// ServiceAnalysis returns the analysis for a single service.
func (c *Client) ServiceAnalysis(ctx context.Context, service string) (*types.ServiceAnalysis, error) {
	req := graphql.NewRequest(serviceAnalysisQuery)
	req.Var("service", service)

	var resp struct {
		ServiceAnalysis types.ServiceAnalysis `json:"serviceAnalysis"`
	}

	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("service analysis query failed: %w", err)
	}

	return &resp.ServiceAnalysis, nil
}
