package services

import "github.com/dmitrijs2005/geotracker/internal/common"

// ValidationError rejects a request before it reaches storage. Message is
// safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is lets callers match any ValidationError with common.ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == common.ErrValidation }

func invalid(msg string) error { return &ValidationError{Message: msg} }
