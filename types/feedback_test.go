package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() FeedbackSubmission {
	return FeedbackSubmission{
		Name:             "Ana",
		Email:            "ana@x.com",
		FeedbackType:     FeedbackTypeBug,
		Service:          "svc1",
		Message:          "It crashes on load",
		Rating:           2,
		AttachScreenshot: false,
		AgreeToTerms:     true,
	}
}

func TestValidateWellFormedSubmission(t *testing.T) {
	sub := validSubmission()
	assert.Empty(t, sub.Validate())
}

func TestValidateFieldConstraints(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FeedbackSubmission)
		field  string
	}{
		{"blank name", func(s *FeedbackSubmission) { s.Name = "  " }, "name"},
		{"blank email", func(s *FeedbackSubmission) { s.Email = "" }, "email"},
		{"malformed email", func(s *FeedbackSubmission) { s.Email = "not-an-address" }, "email"},
		{"unknown feedback type", func(s *FeedbackSubmission) { s.FeedbackType = "rant" }, "feedbackType"},
		{"blank feedback type", func(s *FeedbackSubmission) { s.FeedbackType = "" }, "feedbackType"},
		{"blank service", func(s *FeedbackSubmission) { s.Service = "" }, "service"},
		{"short message", func(s *FeedbackSubmission) { s.Message = "too short" }, "message"},
		{"whitespace-padded short message", func(s *FeedbackSubmission) { s.Message = "   bad    " }, "message"},
		{"rating zero", func(s *FeedbackSubmission) { s.Rating = 0 }, "rating"},
		{"rating six", func(s *FeedbackSubmission) { s.Rating = 6 }, "rating"},
		{"terms not accepted", func(s *FeedbackSubmission) { s.AgreeToTerms = false }, "agreeToTerms"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)

			violations := sub.Validate()
			require.NotEmpty(t, violations)

			fields := make([]string, len(violations))
			for i, v := range violations {
				fields[i] = v.Field
			}
			assert.Contains(t, fields, tc.field)
		})
	}
}

func TestValidateAllowsEveryFeedbackType(t *testing.T) {
	for _, ft := range []string{
		FeedbackTypeSuggestion, FeedbackTypeBug, FeedbackTypePraise, FeedbackTypeComplaint,
	} {
		sub := validSubmission()
		sub.FeedbackType = ft
		assert.Empty(t, sub.Validate(), ft)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	sub := FeedbackSubmission{}
	violations := sub.Validate()

	// name, email, feedbackType, service, message, rating, agreeToTerms
	assert.Len(t, violations, 7)
	assert.Contains(t, violations.Error(), "rating: must be between 1 and 5")
}

func TestPublicDropsInternalFields(t *testing.T) {
	fb := Feedback{
		ID:           "65fc0b2e9d1f4a0012345678",
		Name:         "Ana",
		Email:        "ana@x.com",
		FeedbackType: FeedbackTypeBug,
		Service:      "svc1",
		Message:      "It crashes on load",
		Rating:       2,
		AgreeToTerms: true,
	}

	public := fb.Public()
	assert.Equal(t, fb.Name, public.Name)
	assert.Equal(t, fb.Email, public.Email)
	assert.Equal(t, fb.Service, public.Service)
	assert.Equal(t, fb.Rating, public.Rating)
}

func TestKnownServicesReturnsCopy(t *testing.T) {
	first := KnownServices()
	require.NotEmpty(t, first)
	first[0].Name = "mutated"

	assert.NotEqual(t, "mutated", KnownServices()[0].Name)
}
