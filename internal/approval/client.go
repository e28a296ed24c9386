// Package approval implements the client for the external feedback approval
// service, a GraphQL API that returns an approve/reject verdict for each
// candidate submission.
package approval

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/feedbackhq/feedback-backend/types"
	"github.com/machinebox/graphql"
)

// Verdict is the approval service's decision for one submission. Reason is
// human-readable and empty when approved.
type Verdict struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// Client is a client for the approval service. It is constructed once at
// startup and shared by all in-flight submissions.
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

// NewClient creates a new approval client for the given GraphQL endpoint.
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

const approveFeedbackMutation = `
mutation ApproveFeedback($feedbackData: FeedbackInput!) {
	approveFeedback(feedback: $feedbackData) {
		approved
		reason
	}
}`

// CheckApproval submits the full candidate payload to the approval service
// and returns its verdict. A transport or protocol failure returns an error;
// a rejection verdict does not.
func (c *Client) CheckApproval(ctx context.Context, sub types.FeedbackSubmission) (*Verdict, error) {
	req := graphql.NewRequest(approveFeedbackMutation)
	req.Var("feedbackData", map[string]interface{}{
		"name":             sub.Name,
		"email":            sub.Email,
		"feedbackType":     sub.FeedbackType,
		"service":          sub.Service,
		"message":          sub.Message,
		"rating":           sub.Rating,
		"attachScreenshot": sub.AttachScreenshot,
		"agreeToTerms":     sub.AgreeToTerms,
	})

	var resp struct {
		ApproveFeedback Verdict `json:"approveFeedback"`
	}

	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("approval request failed: %w", err)
	}

	return &resp.ApproveFeedback, nil
}
