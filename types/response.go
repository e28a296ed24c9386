package types

// StatusResponse is a simple success envelope.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the error envelope documented for all endpoints. Reason is
// present only for rejection responses and carries the approval service's
// verdict verbatim so clients can branch without parsing message text.
type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
	Details string `json:"details,omitempty"`
	Code    string `json:"code,omitempty"`
}

// ListResponse wraps a collection payload.
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}
