package services

import (
	"context"

	apperrors "github.com/feedbackhq/feedback-backend/errors"
	"github.com/feedbackhq/feedback-backend/internal/approval"
	"github.com/feedbackhq/feedback-backend/internal/store"
	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/feedbackhq/feedback-backend/types"
	"go.uber.org/zap"
)

// ApprovalChecker asks the external approval service for a verdict.
type ApprovalChecker interface {
	CheckApproval(ctx context.Context, sub types.FeedbackSubmission) (*approval.Verdict, error)
}

// RejectionNotifier emails a rejection notice to the submitter.
type RejectionNotifier interface {
	SendRejectionEmail(ctx context.Context, to, name, service, reason string) error
}

// FeedbackService orchestrates one submission: validate, check approval,
// then either notify-and-reject or persist. It owns all failure propagation
// for the pipeline.
type FeedbackService struct {
	store    store.FeedbackStore
	approval ApprovalChecker
	notifier RejectionNotifier
	log      *zap.SugaredLogger
}

// NewFeedbackService creates the submission orchestrator.
func NewFeedbackService(feedbackStore store.FeedbackStore, checker ApprovalChecker, notifier RejectionNotifier) *FeedbackService {
	return &FeedbackService{
		store:    feedbackStore,
		approval: checker,
		notifier: notifier,
		log:      logger.GetLogger(),
	}
}

// Submit runs the pipeline for a single submission. Per invocation it makes
// exactly one approval call, at most one notification, and at most one store
// write, in that order, with no retries.
//
// Failure modes, all *errors.AppError:
//   - ValidationError: malformed input, returned before any network call
//   - RejectedError: the approval verdict was negative; Reason carries the
//     verdict text verbatim
//   - ApprovalServiceError / StoreError: the named collaborator failed
//
// A notification failure after a rejection is logged but never masks the
// rejection outcome.
func (s *FeedbackService) Submit(ctx context.Context, sub types.FeedbackSubmission) (*types.Feedback, error) {
	if violations := sub.Validate(); len(violations) > 0 {
		return nil, apperrors.ValidationFailed("invalid feedback submission", violations.Error())
	}

	verdict, err := s.approval.CheckApproval(ctx, sub)
	if err != nil {
		s.log.Errorw("Approval check failed",
			"service", sub.Service,
			"error", err)
		return nil, apperrors.ApprovalFailed(err)
	}

	if !verdict.Approved {
		s.log.Infow("Feedback rejected by approval service",
			"email", logger.MaskEmail(sub.Email),
			"service", sub.Service,
			"reason", verdict.Reason)

		if err := s.notifier.SendRejectionEmail(ctx, sub.Email, sub.Name, sub.Service, verdict.Reason); err != nil {
			// The caller must still observe the rejection, not the
			// notification failure.
			s.log.Errorw("Failed to send rejection email",
				"email", logger.MaskEmail(sub.Email),
				"error", err)
		}

		return nil, apperrors.Rejected(verdict.Reason)
	}

	saved, err := s.store.Save(ctx, &types.Feedback{
		Name:             sub.Name,
		Email:            sub.Email,
		FeedbackType:     sub.FeedbackType,
		Service:          sub.Service,
		Message:          sub.Message,
		Rating:           sub.Rating,
		AttachScreenshot: sub.AttachScreenshot,
		AgreeToTerms:     sub.AgreeToTerms,
	})
	if err != nil {
		s.log.Errorw("Failed to persist feedback",
			"service", sub.Service,
			"error", err)
		return nil, apperrors.NewStoreError(err)
	}

	return saved, nil
}
