package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorError(t *testing.T) {
	err := New(StoreError, "persistence failed", "write timeout")
	assert.Equal(t, "STORE_ERROR: persistence failed (write timeout)", err.Error())

	noDetail := New(ServerError, "boom", "")
	assert.Equal(t, "SERVER_ERROR: boom", noDetail.Error())
}

func TestRejectedCarriesReason(t *testing.T) {
	err := Rejected("duplicate report")

	assert.Equal(t, RejectedError, err.Type)
	assert.Equal(t, "duplicate report", err.Reason)
	assert.Equal(t, http.StatusUnprocessableEntity, err.GetHTTPStatus())

	assert.True(t, IsRejected(err))
	assert.Equal(t, "duplicate report", RejectionReason(err))
}

func TestIsRejectedDistinguishesInfrastructureFaults(t *testing.T) {
	cases := []error{
		ApprovalFailed(fmt.Errorf("connection refused")),
		NewStoreError(fmt.Errorf("write failed")),
		NotificationFailed(fmt.Errorf("smtp timeout")),
		ValidationFailed("invalid submission", "rating out of range"),
		fmt.Errorf("plain error"),
	}

	for _, err := range cases {
		assert.False(t, IsRejected(err), "expected %v not to be a rejection", err)
		assert.Empty(t, RejectionReason(err))
	}
}

func TestIsRejectedSeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("submit: %w", Rejected("spam"))
	assert.True(t, IsRejected(err))
	assert.Equal(t, "spam", RejectionReason(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := Wrap(cause, ApprovalServiceError, "approval check failed")

	assert.Equal(t, ApprovalServiceError, err.Type)
	assert.Equal(t, cause, err.Unwrap())
	assert.Equal(t, http.StatusBadGateway, err.GetHTTPStatus())

	assert.Nil(t, Wrap(nil, ApprovalServiceError, "ignored"))
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		errType ErrorType
		status  int
	}{
		{ValidationError, http.StatusBadRequest},
		{RejectedError, http.StatusUnprocessableEntity},
		{ApprovalServiceError, http.StatusBadGateway},
		{NotificationError, http.StatusBadGateway},
		{ExternalServiceError, http.StatusBadGateway},
		{StoreError, http.StatusInternalServerError},
		{NotFoundError, http.StatusNotFound},
		{RateLimitError, http.StatusTooManyRequests},
		{ServerError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.status, New(tc.errType, "msg", "").GetHTTPStatus(), string(tc.errType))
	}
}
