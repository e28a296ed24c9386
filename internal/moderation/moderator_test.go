package moderation

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/feedbackhq/feedback-backend/types"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

type mockFeedbackStore struct {
	mock.Mock
}

func (m *mockFeedbackStore) Save(ctx context.Context, fb *types.Feedback) (*types.Feedback, error) {
	args := m.Called(ctx, fb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Feedback), args.Error(1)
}

func (m *mockFeedbackStore) List(ctx context.Context, limit int64) ([]types.Feedback, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Feedback), args.Error(1)
}

func (m *mockFeedbackStore) CountByEmailSince(ctx context.Context, email string, since time.Time) (int64, error) {
	args := m.Called(ctx, email, since)
	return args.Get(0).(int64), args.Error(1)
}

func cleanSubmission() types.FeedbackSubmission {
	return types.FeedbackSubmission{
		Name:         "Ana",
		Email:        "ana@x.com",
		FeedbackType: "bug",
		Service:      "svc1",
		Message:      "The dashboard times out",
		Rating:       2,
		AgreeToTerms: true,
	}
}

func TestModerateApprovesCleanSubmission(t *testing.T) {
	st := new(mockFeedbackStore)
	st.On("CountByEmailSince", mock.Anything, "ana@x.com", mock.Anything).
		Return(int64(0), nil).Once()

	moderator := NewModerator(st, []string{"darn"}, 5, 5*time.Minute)
	verdict, err := moderator.Moderate(context.Background(), cleanSubmission())

	require.NoError(t, err)
	assert.True(t, verdict.Approved)
	assert.Equal(t, "Feedback approved.", verdict.Reason)
	st.AssertExpectations(t)
}

func TestModerateRejectsSpam(t *testing.T) {
	st := new(mockFeedbackStore)
	st.On("CountByEmailSince", mock.Anything, "ana@x.com", mock.MatchedBy(func(since time.Time) bool {
		// The window lower bound must be about five minutes in the past.
		age := time.Since(since)
		return age > 4*time.Minute && age < 6*time.Minute
	})).Return(int64(5), nil).Once()

	moderator := NewModerator(st, nil, 5, 5*time.Minute)
	verdict, err := moderator.Moderate(context.Background(), cleanSubmission())

	require.NoError(t, err)
	assert.False(t, verdict.Approved)
	assert.Contains(t, verdict.Reason, "Too many submissions")
	st.AssertExpectations(t)
}

func TestModerateBelowSpamThreshold(t *testing.T) {
	st := new(mockFeedbackStore)
	st.On("CountByEmailSince", mock.Anything, "ana@x.com", mock.Anything).
		Return(int64(4), nil).Once()

	moderator := NewModerator(st, nil, 5, 5*time.Minute)
	verdict, err := moderator.Moderate(context.Background(), cleanSubmission())

	require.NoError(t, err)
	assert.True(t, verdict.Approved)
}

func TestModerateRejectsBadLanguage(t *testing.T) {
	st := new(mockFeedbackStore)
	st.On("CountByEmailSince", mock.Anything, "ana@x.com", mock.Anything).
		Return(int64(0), nil).Once()

	sub := cleanSubmission()
	sub.Message = "This DARN thing never works"

	moderator := NewModerator(st, []string{"darn"}, 5, 5*time.Minute)
	verdict, err := moderator.Moderate(context.Background(), sub)

	require.NoError(t, err)
	assert.False(t, verdict.Approved)
	assert.Contains(t, verdict.Reason, "Inappropriate language")
}

func TestModerateSpamCheckRunsFirst(t *testing.T) {
	st := new(mockFeedbackStore)
	st.On("CountByEmailSince", mock.Anything, "ana@x.com", mock.Anything).
		Return(int64(9), nil).Once()

	sub := cleanSubmission()
	sub.Message = "This darn thing never works"

	moderator := NewModerator(st, []string{"darn"}, 5, 5*time.Minute)
	verdict, err := moderator.Moderate(context.Background(), sub)

	require.NoError(t, err)
	assert.Contains(t, verdict.Reason, "Too many submissions")
}

func TestModerateStoreFailure(t *testing.T) {
	st := new(mockFeedbackStore)
	st.On("CountByEmailSince", mock.Anything, "ana@x.com", mock.Anything).
		Return(int64(0), assert.AnError).Once()

	moderator := NewModerator(st, nil, 5, 5*time.Minute)
	verdict, err := moderator.Moderate(context.Background(), cleanSubmission())

	require.Error(t, err)
	assert.Nil(t, verdict)
}

func TestLoadBadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bw.txt")
	require.NoError(t, os.WriteFile(path, []byte("Darn\n\n  heck  \n"), 0o644))

	words, err := LoadBadWords(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"darn", "heck"}, words)
}

func TestLoadBadWordsMissingFile(t *testing.T) {
	_, err := LoadBadWords(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestSchemaApproveFeedbackMutation(t *testing.T) {
	st := new(mockFeedbackStore)
	st.On("CountByEmailSince", mock.Anything, "ana@x.com", mock.Anything).
		Return(int64(0), nil).Once()

	moderator := NewModerator(st, []string{"darn"}, 5, 5*time.Minute)
	schema, err := NewSchema(moderator)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:  schema,
		Context: context.Background(),
		RequestString: `mutation ApproveFeedback($feedbackData: FeedbackInput!) {
			approveFeedback(feedback: $feedbackData) { approved reason }
		}`,
		VariableValues: map[string]interface{}{
			"feedbackData": map[string]interface{}{
				"name":             "Ana",
				"email":            "ana@x.com",
				"feedbackType":     "bug",
				"service":          "svc1",
				"message":          "The dashboard times out",
				"rating":           2,
				"attachScreenshot": false,
				"agreeToTerms":     true,
			},
		},
	})
	require.Empty(t, result.Errors)

	raw, err := json.Marshal(result.Data)
	require.NoError(t, err)

	var decoded struct {
		ApproveFeedback struct {
			Approved bool   `json:"approved"`
			Reason   string `json:"reason"`
		} `json:"approveFeedback"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.ApproveFeedback.Approved)
	assert.Equal(t, "Feedback approved.", decoded.ApproveFeedback.Reason)
}

func TestSchemaRejectsBadLanguage(t *testing.T) {
	st := new(mockFeedbackStore)
	st.On("CountByEmailSince", mock.Anything, "ana@x.com", mock.Anything).
		Return(int64(0), nil).Once()

	moderator := NewModerator(st, []string{"darn"}, 5, 5*time.Minute)
	schema, err := NewSchema(moderator)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:  schema,
		Context: context.Background(),
		RequestString: `mutation {
			approveFeedback(feedback: {
				name: "Ana", email: "ana@x.com", feedbackType: "bug",
				service: "svc1", message: "this darn thing", rating: 1,
				attachScreenshot: false, agreeToTerms: true
			}) { approved reason }
		}`,
	})
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	verdict := data["approveFeedback"].(map[string]interface{})
	assert.Equal(t, false, verdict["approved"])
	assert.Contains(t, verdict["reason"], "Inappropriate language")
}
