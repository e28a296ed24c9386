package handlers

import (
	"context"

	"github.com/feedbackhq/feedback-backend/types"
)

// SubmissionService is the orchestrator surface the feedback handler depends
// on. *services.FeedbackService satisfies it.
type SubmissionService interface {
	Submit(ctx context.Context, sub types.FeedbackSubmission) (*types.Feedback, error)
}

// AnalyticsService is the analytics read-model surface the dashboard handler
// depends on. *analytics.Client satisfies it.
type AnalyticsService interface {
	Analysis(ctx context.Context) (*types.FeedbackAnalysis, error)
	ServiceAnalysis(ctx context.Context, service string) (*types.ServiceAnalysis, error)
}
