package model

import (
	"fmt"

	"github.com/Laisky/errors/v2"
)

// ErrNotFound indicates the targeted id does not resolve to a live record.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a uniqueness violation (email, username or slug).
var ErrConflict = errors.New("duplicate value for unique field")

// ErrInvalidReference indicates a supplied id is not a well-formed object id.
var ErrInvalidReference = errors.New("invalid reference id")

// ValidationError reports a field failing its declared constraint.
// A validation failure rejects the whole write; nothing is partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
