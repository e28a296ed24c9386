package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/feedbackhq/feedback-backend/errors"
	"github.com/feedbackhq/feedback-backend/internal/store"
	"github.com/feedbackhq/feedback-backend/types"
	"github.com/gin-gonic/gin"
)

const defaultListLimit = 50

// FeedbackHandler handles feedback submission and listing endpoints.
type FeedbackHandler struct {
	submissions   SubmissionService
	feedbackStore store.FeedbackStore
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(submissions SubmissionService, feedbackStore store.FeedbackStore) *FeedbackHandler {
	return &FeedbackHandler{
		submissions:   submissions,
		feedbackStore: feedbackStore,
	}
}

// SubmitFeedback accepts a feedback submission, runs it through the
// submission pipeline, and returns the stored record's public fields.
// Rejections come back as 422 with the verdict reason; validation failures
// as 400; collaborator faults as 502/500.
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var sub types.FeedbackSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		_ = c.Error(errors.ValidationFailed("invalid request body", err.Error()))
		return
	}

	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Message = strings.TrimSpace(sub.Message)
	sub.Service = strings.TrimSpace(sub.Service)

	saved, err := h.submissions.Submit(c.Request.Context(), sub)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, saved.Public())
}

// ListFeedback returns recent feedback records, newest first.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	limit := int64(defaultListLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			_ = c.Error(errors.ValidationFailed("invalid limit", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	records, err := h.feedbackStore.List(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(errors.NewStoreError(err))
		return
	}

	c.JSON(http.StatusOK, types.ListResponse{Data: records, Count: len(records)})
}

// ListServices returns the enumerated service list used to populate the
// submission form.
func (h *FeedbackHandler) ListServices(c *gin.Context) {
	services := types.KnownServices()
	c.JSON(http.StatusOK, types.ListResponse{Data: services, Count: len(services)})
}
