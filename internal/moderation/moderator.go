package moderation

import (
	"bufio"
	"context"
	"os"
	"strings"
	"time"

	"github.com/feedbackhq/feedback-backend/internal/store"
	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/feedbackhq/feedback-backend/types"
	"go.uber.org/zap"
)

const (
	spamReason      = "Too many submissions in a short time period. Please try again later."
	languageReason  = "Inappropriate language detected in the feedback message."
	approvedMessage = "Feedback approved."
)

// Verdict is the outcome of moderating one submission.
type Verdict struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

// Moderator decides whether a submission is acceptable. It rejects
// submissions containing disallowed words and submitters who exceed the
// spam threshold within the spam window.
type Moderator struct {
	store     store.FeedbackStore
	badWords  []string
	threshold int64
	window    time.Duration
	log       *zap.SugaredLogger
}

// NewModerator creates a Moderator backed by the given feedback store.
func NewModerator(feedbackStore store.FeedbackStore, badWords []string, threshold int, window time.Duration) *Moderator {
	return &Moderator{
		store:     feedbackStore,
		badWords:  badWords,
		threshold: int64(threshold),
		window:    window,
		log:       logger.GetLogger(),
	}
}

// Moderate evaluates a submission and returns the verdict. The spam check
// runs before the language check, matching the order submitters see in
// rejection notices.
func (m *Moderator) Moderate(ctx context.Context, sub types.FeedbackSubmission) (*Verdict, error) {
	spamming, err := m.isSpamming(ctx, sub.Email)
	if err != nil {
		return nil, err
	}
	if spamming {
		m.log.Infow("Submission flagged as spam",
			"email", logger.MaskEmail(sub.Email))
		return &Verdict{Approved: false, Reason: spamReason}, nil
	}

	if m.containsBadWords(sub.Message) {
		m.log.Infow("Submission flagged for language",
			"email", logger.MaskEmail(sub.Email))
		return &Verdict{Approved: false, Reason: languageReason}, nil
	}

	return &Verdict{Approved: true, Reason: approvedMessage}, nil
}

func (m *Moderator) isSpamming(ctx context.Context, email string) (bool, error) {
	since := time.Now().UTC().Add(-m.window)
	count, err := m.store.CountByEmailSince(ctx, email, since)
	if err != nil {
		return false, err
	}
	return count >= m.threshold, nil
}

func (m *Moderator) containsBadWords(message string) bool {
	message = strings.ToLower(message)
	for _, word := range m.badWords {
		if strings.Contains(message, word) {
			return true
		}
	}
	return false
}

// LoadBadWords reads a newline-separated word list. Blank lines are
// skipped and words are lowercased for case-insensitive matching.
func LoadBadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
