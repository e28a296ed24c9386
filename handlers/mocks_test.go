package handlers

import (
	"context"
	"time"

	"github.com/feedbackhq/feedback-backend/types"
	"github.com/stretchr/testify/mock"
)

// MockSubmissionService implements SubmissionService for handler tests.
type MockSubmissionService struct {
	mock.Mock
}

var _ SubmissionService = (*MockSubmissionService)(nil)

func (m *MockSubmissionService) Submit(ctx context.Context, sub types.FeedbackSubmission) (*types.Feedback, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Feedback), args.Error(1)
}

// MockFeedbackStore implements store.FeedbackStore for handler tests.
type MockFeedbackStore struct {
	mock.Mock
}

func (m *MockFeedbackStore) Save(ctx context.Context, fb *types.Feedback) (*types.Feedback, error) {
	args := m.Called(ctx, fb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Feedback), args.Error(1)
}

func (m *MockFeedbackStore) List(ctx context.Context, limit int64) ([]types.Feedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Feedback), args.Error(1)
}

func (m *MockFeedbackStore) CountByEmailSince(ctx context.Context, email string, since time.Time) (int64, error) {
	args := m.Called(ctx, email, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockAnalyticsService implements AnalyticsService for handler tests.
type MockAnalyticsService struct {
	mock.Mock
}

var _ AnalyticsService = (*MockAnalyticsService)(nil)

func (m *MockAnalyticsService) Analysis(ctx context.Context) (*types.FeedbackAnalysis, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedbackAnalysis), args.Error(1)
}

func (m *MockAnalyticsService) ServiceAnalysis(ctx context.Context, service string) (*types.ServiceAnalysis, error) {
	args := m.Called(ctx, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ServiceAnalysis), args.Error(1)
}
