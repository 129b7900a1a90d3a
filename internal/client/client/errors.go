package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTimedOut     = errors.New("request timed out")
	// ErrLookupMiss reports an address the lookup service recognises as
	// unroutable or unknown.
	ErrLookupMiss = errors.New("no geolocation data for address")
)

// APIError is a non-2xx response. Message holds the server-supplied text
// when the body carried one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is lets callers match status classes with the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrUnavailable:
		return e.StatusCode == http.StatusBadGateway ||
			e.StatusCode == http.StatusServiceUnavailable ||
			e.StatusCode == http.StatusGatewayTimeout
	}
	return false
}

// ServerMessage returns the server-supplied message carried by err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// parseError builds an APIError from an error response body. Both the
// backend's {"message": "..."} and gin-style {"error": "..."} shapes are
// understood, as is the lookup service's {"error": {"message": "..."}}.
func parseError(statusCode int, body []byte) error {
	var payload struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	apiErr := &APIError{StatusCode: statusCode}

	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if payload.Message != "" {
		apiErr.Message = payload.Message
		return apiErr
	}
	if len(payload.Error) > 0 {
		var s string
		if json.Unmarshal(payload.Error, &s) == nil {
			apiErr.Message = s
			return apiErr
		}
		var nested struct {
			Title   string `json:"title"`
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &nested) == nil {
			apiErr.Message = strings.TrimSpace(nested.Message)
			if apiErr.Message == "" {
				apiErr.Message = nested.Title
			}
		}
	}
	return apiErr
}

// mapTransportError classifies failures that happened before a response was
// received.
func mapTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimedOut, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimedOut, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
