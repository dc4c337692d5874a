package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoData signals a derive operation invoked before any relevant rows
// were ingested. Distinct from a transport failure: callers render it as an
// empty result, not a retryable error.
var ErrNoData = errors.New("no data ingested")

// ErrNotFound signals a lookup for an entity that does not exist
var ErrNotFound = errors.New("not found")

// ValidationError rejects an out-of-range parameter or malformed field
// before any mutation takes place
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError with a formatted reason
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RowError ties a validation failure to its row number in an uploaded file
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// BatchError enumerates every failing row of a rejected upload. Uploads are
// all-or-nothing: one BatchError means no row was applied.
type BatchError struct {
	Dataset string
	Rows    []RowError
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Rows))
	for i, r := range e.Rows {
		msgs[i] = r.Error()
	}
	return fmt.Sprintf("%s upload rejected: %s", e.Dataset, strings.Join(msgs, "; "))
}
