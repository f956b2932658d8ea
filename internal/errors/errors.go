package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the scan was interrupted (e.g., SIGINT).
)

var (
	// ErrInvalidNumber reports a start number that is not a non-empty
	// sequence of ASCII digits or that is not strictly positive.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidCount reports a thread or iteration count that is not a
	// positive integer, or whose product overflows 64 bits.
	ErrInvalidCount = errors.New("invalid count")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation, provides a human-readable explanation and carries
// the sentinel class of the failure (ErrInvalidNumber or ErrInvalidCount).
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
	// Err is the error class, matched with errors.Is.
	Err error
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// Unwrap returns the error class so that errors.Is(err, ErrInvalidNumber)
// works through a ValidationError.
func (e ValidationError) Unwrap() error { return e.Err }

// InvalidNumber builds a ValidationError of class ErrInvalidNumber.
func InvalidNumber(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...), Err: ErrInvalidNumber}
}

// InvalidCount builds a ValidationError of class ErrInvalidCount.
func InvalidCount(field, format string, a ...any) error {
	return ValidationError{Field: field, Message: fmt.Sprintf(format, a...), Err: ErrInvalidCount}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error returned by the application layer to a process
// exit code.
func ExitCodeFor(err error) int {
	var cfgErr ConfigError
	var valErr ValidationError
	switch {
	case err == nil:
		return ExitSuccess
	case IsContextError(err):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
