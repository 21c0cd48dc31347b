package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Package level sentinels wrap one of these so callers can branch with errors.Is
// without knowing which package produced the error.
var (
	ErrNotFound        = errors.New("not found")
	ErrPersistence     = errors.New("persistence failure")
	ErrMalformedConfig = errors.New("malformed configuration")
	ErrConflict        = errors.New("conflicting update")
)

// ValidationError reports user input that cannot be accepted. It never corresponds to a change
// in stored state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// Persistence wraps a storage driver error so it can be told apart from domain errors.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
