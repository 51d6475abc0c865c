package errors

import (
	"errors"
	"strings"
)

var (
	ErrUnauthenticated  = errors.New("not authenticated")
	ErrForbidden        = errors.New("not authorized")
	ErrPostNotFound     = errors.New("post not found")
	ErrValidation       = errors.New("invalid input")
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrOwnerIndexStale marks a partial dual-write: the post row and the
	// owner's post index disagree and need manual reconciliation.
	ErrOwnerIndexStale = errors.New("owner index out of sync")
)

// FieldViolation is a single failed input check.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError reports every violated field, not just the first one
// found. Matches errors.Is(err, ErrValidation).
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
