package usecase

import (
	"github.com/pkg/errors"
)

var (
	// ErrSummaryNotFound is returned when a summary does not exist or belongs to another user
	ErrSummaryNotFound = errors.New("summary not found")
)

// ValidationError is a rejected request. No downstream calls were made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError wraps a failed call to the completion service
type UpstreamError struct {
	Provider string
	Err      error
}

func (e *UpstreamError) Error() string {
	return "completion service failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failed insert into content_summaries
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "failed to save summary: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func newValidationError(msg string) error {
	return errors.WithStack(&ValidationError{Message: msg})
}
