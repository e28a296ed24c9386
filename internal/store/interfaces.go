// Package store defines persistence interfaces implemented by the database
// adapters under store/mongodb.
package store

import (
	"context"
	"time"

	"github.com/feedbackhq/feedback-backend/types"
)

// FeedbackStore persists accepted feedback records. Implementations must be
// safe for concurrent use by many in-flight submissions.
type FeedbackStore interface {
	// Save persists a new feedback record, assigning its identifier and
	// timestamps. Duplicate content is stored as a separate record.
	Save(ctx context.Context, feedback *types.Feedback) (*types.Feedback, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int64) ([]types.Feedback, error)

	// CountByEmailSince counts records submitted by an email address at or
	// after the given instant. Used by the moderation spam check.
	CountByEmailSince(ctx context.Context, email string, since time.Time) (int64, error)
}
