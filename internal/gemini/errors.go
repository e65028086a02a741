package gemini

import (
	"errors"
	"fmt"
	"net/http"
)

// Common Gemini API errors.
var (
	// ErrNoAPIKey is returned before any network call when no credential is set.
	ErrNoAPIKey = errors.New("no API key configured (set GEMINI_API_KEY)")
	// ErrUnauthorized is returned when authentication fails.
	ErrUnauthorized = errors.New("unauthorized: check your API key")
	// ErrForbidden is returned when the key may not use the model.
	ErrForbidden = errors.New("forbidden: key lacks access to this model")
	// ErrNotFound is returned for an unknown model.
	ErrNotFound = errors.New("model not found")
	// ErrRateLimited is returned for HTTP 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmptyResponse is returned when a 2xx response carries no usable content.
	ErrEmptyResponse = errors.New("empty response")
	// ErrResponseTooLarge is returned when a response exceeds the read limit.
	ErrResponseTooLarge = errors.New("response too large")
)

// APIError is a non-2xx response. Status is the HTTP status, Code the
// service's error status (e.g. RESOURCE_EXHAUSTED).
type APIError struct {
	Status  int
	Code    string
	Message string
	Body    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if e.Code != "" {
		return fmt.Sprintf("gemini API error %d %s: %s", e.Status, e.Code, msg)
	}
	return fmt.Sprintf("gemini API error %d: %s", e.Status, msg)
}

// Unwrap maps well-known statuses onto the sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}
