package handlers

import (
	"net/http"

	"github.com/feedbackhq/feedback-backend/errors"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the dashboard's read models, proxied from the
// external analysis service.
type AnalyticsHandler struct {
	analytics AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analytics AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GetAnalysis returns the aggregate analysis across all feedback.
func (h *AnalyticsHandler) GetAnalysis(c *gin.Context) {
	analysis, err := h.analytics.Analysis(c.Request.Context())
	if err != nil {
		_ = c.Error(errors.AnalyticsUnavailable(err))
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GetServiceAnalysis returns the analysis for one service.
func (h *AnalyticsHandler) GetServiceAnalysis(c *gin.Context) {
	service := c.Param("service")
	if service == "" {
		_ = c.Error(errors.ValidationFailed("invalid service", "service identifier is required"))
		return
	}

	analysis, err := h.analytics.ServiceAnalysis(c.Request.Context(), service)
	if err != nil {
		_ = c.Error(errors.AnalyticsUnavailable(err))
		return
	}

	c.JSON(http.StatusOK, analysis)
}
