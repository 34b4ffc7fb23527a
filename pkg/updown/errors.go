package updown

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidBaseURL   = errors.New("updown: invalid base URL")
	ErrInvalidHash      = errors.New("updown: invalid file hash")
	ErrNotFound         = errors.New("updown: file not found")
	ErrUnexpectedStatus = errors.New("updown: unexpected response status")
	ErrRequestFailed    = errors.New("updown: request failed")
	ErrTimeout          = errors.New("updown: request timeout")
	ErrDecodeResponse   = errors.New("updown: failed to decode response")
)

// StatusError describes a non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	// Detail is the server's error message, if it sent one.
	Detail string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return ErrUnexpectedStatus
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
