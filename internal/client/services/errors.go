package services

import (
	"errors"

	"github.com/dmitrijs2005/geotracker/internal/client/client"
)

// Kind classifies a service failure so callers can branch without looking
// at message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthenticated
	KindRemoteFailure
	KindLookupMiss
	KindTimedOut
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindRemoteFailure:
		return "remote_failure"
	case KindLookupMiss:
		return "lookup_miss"
	case KindTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Error is the user-facing failure produced by the services. Message is
// safe to show; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// MessageOf returns the user-facing message of err, or "" for nil.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

func validationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// remoteError converts a transport failure. The server's own message wins
// over fallback.
func remoteError(err error, fallback string) *Error {
	msg := client.ServerMessage(err)
	if msg == "" {
		msg = fallback
	}
	kind := KindRemoteFailure
	switch {
	case errors.Is(err, client.ErrTimedOut):
		kind = KindTimedOut
	case errors.Is(err, client.ErrUnauthorized):
		kind = KindUnauthenticated
	case errors.Is(err, client.ErrLookupMiss):
		kind = KindLookupMiss
	}
	return &Error{Kind: kind, Message: msg, Err: err}
}
