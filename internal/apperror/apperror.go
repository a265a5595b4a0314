package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrStore      = errors.New("store error")
)

type AppError struct {
	Err     error  // sentinel cause, for errors.Is checks
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a referenced resource does not exist.
// The message is exactly "<resource> not found" — it goes into API error
// bodies verbatim, so no identifiers are included here.
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// StoreFailed wraps a persistence failure. HTTP handlers map this to a
// generic 500 without exposing the underlying cause; the cause stays on
// the chain for logging.
func StoreFailed(op string, cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %s: %w", ErrStore, op, cause),
		Message: fmt.Sprintf("store failure: %s", op),
	}
}
