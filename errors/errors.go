// Package errors defines the structured application error type and the
// error taxonomy used across the submission pipeline. A business rejection
// from the approval service and an infrastructure fault are distinct error
// types so that callers branch on the tag instead of parsing messages.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError      ErrorType = "VALIDATION_ERROR"
	RejectedError        ErrorType = "FEEDBACK_REJECTED"
	ApprovalServiceError ErrorType = "APPROVAL_SERVICE_ERROR"
	NotificationError    ErrorType = "NOTIFICATION_ERROR"
	StoreError           ErrorType = "STORE_ERROR"
	ExternalServiceError ErrorType = "EXTERNAL_SERVICE_ERROR"
	NotFoundError        ErrorType = "NOT_FOUND"
	RateLimitError       ErrorType = "RATE_LIMIT_EXCEEDED"
	ServerError          ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error.
// Reason is only set for RejectedError and carries the approval service's
// verdict text verbatim.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code for the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// ValidationFailed reports malformed input. Always recoverable by the caller
// correcting the submission.
func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Rejected reports a deliberate business-rule rejection from the approval
// service. The reason is surfaced verbatim to the caller; this is not a
// system fault.
func Rejected(reason string) *AppError {
	return &AppError{
		Type:       RejectedError,
		Message:    "Feedback was rejected",
		Reason:     reason,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// ApprovalFailed reports a transport or protocol failure while calling the
// approval service. Distinct from a rejection verdict.
func ApprovalFailed(err error) *AppError {
	return &AppError{
		Type:       ApprovalServiceError,
		Message:    "approval check failed",
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

// NotificationFailed reports a mail transport failure. The orchestrator logs
// this but never lets it mask a rejection outcome.
func NotificationFailed(err error) *AppError {
	return &AppError{
		Type:       NotificationError,
		Message:    "rejection notification failed",
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

// NewStoreError reports a persistence failure.
func NewStoreError(err error) *AppError {
	return &AppError{
		Type:       StoreError,
		Message:    "persistence failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// AnalyticsUnavailable reports a failure reaching the analytics service.
func AnalyticsUnavailable(err error) *AppError {
	return &AppError{
		Type:       ExternalServiceError,
		Message:    "analytics service unavailable",
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		Detail:     fmt.Sprintf("Retry after %d seconds", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsRejected reports whether err is a business rejection as opposed to an
// infrastructure fault.
func IsRejected(err error) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == RejectedError
	}
	return false
}

// RejectionReason returns the approval service's verdict reason when err is a
// rejection, and "" otherwise.
func RejectionReason(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr.Type == RejectedError {
		return appErr.Reason
	}
	return ""
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case RejectedError:
		return http.StatusUnprocessableEntity
	case NotFoundError:
		return http.StatusNotFound
	case ApprovalServiceError, NotificationError, ExternalServiceError:
		return http.StatusBadGateway
	case RateLimitError:
		return http.StatusTooManyRequests
	case StoreError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
