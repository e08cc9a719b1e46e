package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the backend. Detail carries the
// server-provided message from the {"detail": ...} error body when present,
// so the console can surface it to the user verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// newAPIError builds an APIError from a response body, preferring the
// structured detail field and falling back to the raw body text.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &APIError{StatusCode: status, Detail: payload.Detail}
	}
	return &APIError{StatusCode: status, Detail: strings.TrimSpace(string(body))}
}
