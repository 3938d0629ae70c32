package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the operation timed out.
	ExitErrorValidation = 3   // Indicates the command rejected its input.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
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
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents a command input rejected before any work starts.
// The message is surfaced verbatim to the caller, so it must be user facing.
type ValidationError struct {
	// Field is the name of the argument that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns the user-facing message.
func (e ValidationError) Error() string { return e.Message }

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// CalculationError encapsulates a failure inside a compute workload while
// preserving the original cause.
type CalculationError struct {
	// Operation names the workload that failed (e.g. "monte_carlo").
	Operation string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the operation and the message of the underlying cause.
func (e CalculationError) Error() string {
	if e.Operation == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation that exceeded its time budget.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
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

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
