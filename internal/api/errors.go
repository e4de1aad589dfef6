package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the backend, preserving the status
// code so callers can tell an authorization failure (session teardown)
// from a transient server failure (state unchanged).
type Error struct {
	StatusCode int
	Detail     string
	RequestID  string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: %s: %s", http.StatusText(e.StatusCode), e.Detail)
}

// AuthFailure reports whether the response means the bearer token was
// rejected. Only 401 counts: a 403 is a permission problem with a valid
// session and must not tear it down.
func (e *Error) AuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Retryable reports whether the request may be retried safely.
func (e *Error) Retryable() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsAuthFailure reports whether err is an API error with status 401.
func IsAuthFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.AuthFailure()
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// errorBody matches the error shapes the backend emits: DRF uses
// {"detail": ...} or {"error": ...}, the admin views {"message": ...}.
type errorBody struct {
	Detail  string `json:"detail"`
	Err     string `json:"error"`
	Message string `json:"message"`
}

// newError builds an Error from a non-2xx response body.
func newError(statusCode int, body []byte, requestID string) *Error {
	e := &Error{StatusCode: statusCode, RequestID: requestID}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Detail != "":
			e.Detail = parsed.Detail
		case parsed.Err != "":
			e.Detail = parsed.Err
		case parsed.Message != "":
			e.Detail = parsed.Message
		}
	}

	return e
}
