package middleware

import (
	"net/http"
	"strconv"

	"github.com/feedbackhq/feedback-backend/errors"
	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/feedbackhq/feedback-backend/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors collected on the gin context as structured
// JSON. Rejections keep their reason in a dedicated field so clients branch
// on the type tag instead of substring-matching error messages.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		appError, ok := err.(*errors.AppError)
		if !ok {
			log.Errorw("Unhandled error",
				"error", err,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"request_id", c.GetString(RequestIDKey))
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Type:    string(errors.ServerError),
				Message: "Internal server error",
				Code:    strconv.Itoa(http.StatusInternalServerError),
			})
			return
		}

		statusCode := appError.GetHTTPStatus()

		// Rejections are expected business outcomes, not faults.
		if appError.Type == errors.RejectedError {
			log.Infow("Request ended in rejection",
				"path", c.Request.URL.Path,
				"reason", appError.Reason,
				"request_id", c.GetString(RequestIDKey))
		} else {
			log.Errorw("Request failed",
				"error_type", string(appError.Type),
				"error", appError.Error(),
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"status", statusCode,
				"request_id", c.GetString(RequestIDKey))
		}

		response := types.ErrorResponse{
			Type:    string(appError.Type),
			Message: appError.Message,
			Reason:  appError.Reason,
			Code:    strconv.Itoa(statusCode),
		}

		// Validation details help the caller fix its input; other details may
		// leak internals and are only shown while debugging.
		if appError.Detail != "" && (gin.IsDebugging() ||
			appError.Type == errors.ValidationError ||
			appError.Type == errors.NotFoundError) {
			response.Details = appError.Detail
		}

		c.JSON(statusCode, response)
	}
}
