package types

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Feedback type values accepted on submission.
const (
	FeedbackTypeSuggestion = "suggestion"
	FeedbackTypeBug        = "bug"
	FeedbackTypePraise     = "praise"
	FeedbackTypeComplaint  = "complaint"
)

// MinMessageLength is the minimum message length after trimming.
const MinMessageLength = 10

// FeedbackSubmission is the request body for submitting feedback.
type FeedbackSubmission struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	FeedbackType     string `json:"feedbackType"`
	Service          string `json:"service"`
	Message          string `json:"message"`
	Rating           int    `json:"rating"`
	AttachScreenshot bool   `json:"attachScreenshot"`
	AgreeToTerms     bool   `json:"agreeToTerms"`
}

// FieldViolation describes a single failed constraint on a submission field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldViolations is the full list of constraint failures for a submission.
type FieldViolations []FieldViolation

// Error renders the violations as a single semicolon-separated string.
func (v FieldViolations) Error() string {
	parts := make([]string, len(v))
	for i, violation := range v {
		parts[i] = fmt.Sprintf("%s: %s", violation.Field, violation.Message)
	}
	return strings.Join(parts, "; ")
}

var validFeedbackTypes = map[string]bool{
	FeedbackTypeSuggestion: true,
	FeedbackTypeBug:        true,
	FeedbackTypePraise:     true,
	FeedbackTypeComplaint:  true,
}

// Validate checks every field constraint and returns the list of violations.
// A submission is well-formed only when the result is empty; malformed input
// must never reach the approval service or the store.
// Service referential validity is advisory and not checked here.
func (s *FeedbackSubmission) Validate() FieldViolations {
	var violations FieldViolations

	if strings.TrimSpace(s.Name) == "" {
		violations = append(violations, FieldViolation{"name", "must not be blank"})
	}

	if strings.TrimSpace(s.Email) == "" {
		violations = append(violations, FieldViolation{"email", "must not be blank"})
	} else if _, err := mail.ParseAddress(s.Email); err != nil {
		violations = append(violations, FieldViolation{"email", "must be a valid email address"})
	}

	if !validFeedbackTypes[s.FeedbackType] {
		violations = append(violations, FieldViolation{
			"feedbackType", "must be one of: suggestion, bug, praise, complaint",
		})
	}

	if strings.TrimSpace(s.Service) == "" {
		violations = append(violations, FieldViolation{"service", "must not be blank"})
	}

	if len(strings.TrimSpace(s.Message)) < MinMessageLength {
		violations = append(violations, FieldViolation{
			"message", fmt.Sprintf("must be at least %d characters", MinMessageLength),
		})
	}

	if s.Rating < 1 || s.Rating > 5 {
		violations = append(violations, FieldViolation{"rating", "must be between 1 and 5"})
	}

	if !s.AgreeToTerms {
		violations = append(violations, FieldViolation{"agreeToTerms", "must be accepted"})
	}

	return violations
}

// Feedback represents a persisted feedback record. Records are created only
// for approved submissions and never mutated afterwards.
type Feedback struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	FeedbackType     string    `json:"feedbackType"`
	Service          string    `json:"service"`
	Message          string    `json:"message"`
	Rating           int       `json:"rating"`
	AttachScreenshot bool      `json:"attachScreenshot"`
	AgreeToTerms     bool      `json:"agreeToTerms"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FeedbackResponse is the public shape returned after a successful
// submission: the submission fields only, no internal identifiers.
type FeedbackResponse struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	FeedbackType     string `json:"feedbackType"`
	Service          string `json:"service"`
	Message          string `json:"message"`
	Rating           int    `json:"rating"`
	AttachScreenshot bool   `json:"attachScreenshot"`
	AgreeToTerms     bool   `json:"agreeToTerms"`
}

// Public reshapes a persisted record to its public submission fields.
func (f *Feedback) Public() FeedbackResponse {
	return FeedbackResponse{
		Name:             f.Name,
		Email:            f.Email,
		FeedbackType:     f.FeedbackType,
		Service:          f.Service,
		Message:          f.Message,
		Rating:           f.Rating,
		AttachScreenshot: f.AttachScreenshot,
		AgreeToTerms:     f.AgreeToTerms,
	}
}
