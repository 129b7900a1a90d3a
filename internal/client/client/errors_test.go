package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", 401, `{"message":"Invalid email or password"}`, "Invalid email or password"},
		{"error string", 400, `{"error":"bad ids"}`, "bad ids"},
		{"nested error", 429, `{"error":{"title":"Rate limit","message":" slow down "}}`, "slow down"},
		{"nested title only", 403, `{"error":{"title":"Forbidden"}}`, "Forbidden"},
		{"not json", 500, `<html>oops</html>`, ""},
		{"empty", 502, ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(tt.status, []byte(tt.body))
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestAPIError_IsMapsStatusClasses(t *testing.T) {
	assert.ErrorIs(t, &APIError{StatusCode: http.StatusUnauthorized}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: http.StatusForbidden}, ErrUnauthorized)
	assert.ErrorIs(t, &APIError{StatusCode: http.StatusServiceUnavailable}, ErrUnavailable)
	assert.NotErrorIs(t, &APIError{StatusCode: http.StatusInternalServerError}, ErrUnavailable)
	assert.NotErrorIs(t, &APIError{StatusCode: http.StatusBadRequest}, ErrUnauthorized)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "409: User already exists", (&APIError{StatusCode: 409, Message: "User already exists"}).Error())
	assert.Equal(t, "404: Not Found", (&APIError{StatusCode: 404}).Error())
}

func TestServerMessage(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", &APIError{StatusCode: 401, Message: "nope"})
	assert.Equal(t, "nope", ServerMessage(wrapped))
	assert.Empty(t, ServerMessage(errors.New("plain")))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestMapTransportError(t *testing.T) {
	assert.Nil(t, mapTransportError(nil))
	assert.ErrorIs(t, mapTransportError(context.DeadlineExceeded), ErrTimedOut)
	assert.ErrorIs(t, mapTransportError(timeoutErr{}), ErrTimedOut)
	assert.ErrorIs(t, mapTransportError(context.Canceled), context.Canceled)
	assert.ErrorIs(t, mapTransportError(errors.New("connection refused")), ErrUnavailable)
}
