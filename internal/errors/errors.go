// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// calculation, overflow, etc.) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All wrapping error types implement the Unwrap() method to support errors.Is()
// and errors.As().
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
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between overflow modes.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorOverflow = 5   // Indicates F(n) does not fit in the result width.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrOverflow is the sentinel matched by every OverflowError through errors.Is.
var ErrOverflow = errors.New("fibonacci result overflows the integer width")

// OverflowError reports that F(N) cannot be represented in an unsigned
// integer of Bits bits.
type OverflowError struct {
	// N is the requested index.
	N uint64
	// Bits is the width of the result type.
	Bits int
	// MaxSafe is the largest index whose result still fits.
	MaxSafe uint64
}

// Error returns a message naming the index and width.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("F(%d) overflows uint%d (largest safe index is %d)", e.N, e.Bits, e.MaxSafe)
}

// Is reports whether target is ErrOverflow.
func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// NewOverflowError creates a new OverflowError.
//
// Parameters:
//   - n: The requested index.
//   - bits: The width of the result type.
//   - maxSafe: The largest index whose result fits in the width.
//
// Returns:
//   - error: A new *OverflowError.
func NewOverflowError(n uint64, bits int, maxSafe uint64) error {
	return &OverflowError{N: n, Bits: bits, MaxSafe: maxSafe}
}

// IsOverflow reports whether err (or any error it wraps) is an overflow.
func IsOverflow(err error) bool {
	return errors.Is(err, ErrOverflow)
}

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

// CalculationError encapsulates a calculation error while preserving the
// original cause, together with the overflow mode that produced it.
type CalculationError struct {
	// Mode is the name of the calculator that failed.
	Mode string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string {
	if e.Mode == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Mode, e.Cause)
}

// Unwrap returns the original wrapped error.
func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError represents errors that occur in the HTTP server component.
// It wraps an underlying error with additional context specific to the server operation.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error returns the error message for a ServerError.
// It combines the descriptive message and the underlying cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
//
// Parameters:
//   - message: A description of the error context.
//   - cause: The underlying error that occurred (can be nil).
//
// Returns:
//   - error: A new ServerError instance.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil when err is nil.
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

// ValidationError represents an error due to invalid input validation.
// It is used for API request validation and configuration validation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the error message for a ValidationError.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}
