// Package apperrors provides tests for application error types.
package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--n"),
			expected: "invalid value 42 for flag --n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			var configErr ConfigError
			if !errors.As(tt.err, &configErr) {
				t.Error("expected error to be ConfigError type")
			}
		})
	}
}

func TestOverflowError(t *testing.T) {
	t.Parallel()

	err := NewOverflowError(48, 32, 47)
	if got, want := err.Error(), "F(48) overflows uint32 (largest safe index is 47)"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if !errors.Is(err, ErrOverflow) {
		t.Error("errors.Is should match ErrOverflow")
	}

	wrapped := fmt.Errorf("calculate: %w", err)
	if !IsOverflow(wrapped) {
		t.Error("IsOverflow should see through wrapping")
	}
	var overflowErr *OverflowError
	if !errors.As(wrapped, &overflowErr) {
		t.Fatal("errors.As should extract *OverflowError")
	}
	if overflowErr.N != 48 || overflowErr.Bits != 32 || overflowErr.MaxSafe != 47 {
		t.Errorf("unexpected fields: %+v", overflowErr)
	}

	if IsOverflow(errors.New("other")) {
		t.Error("IsOverflow should be false for unrelated errors")
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		mode        string
		cause       error
		expectedMsg string
		checkIs     error
	}{
		{
			name:        "Error returns cause message",
			cause:       errors.New("division by zero"),
			expectedMsg: "division by zero",
		},
		{
			name:        "Mode prefixes the message",
			mode:        "checked",
			cause:       errors.New("boom"),
			expectedMsg: "checked: boom",
		},
		{
			name:        "errors.Is works with wrapped context error",
			cause:       context.Canceled,
			expectedMsg: "context canceled",
			checkIs:     context.Canceled,
		},
		{
			name:        "errors.Is works with wrapped overflow",
			mode:        "checked",
			cause:       NewOverflowError(50, 32, 47),
			expectedMsg: "checked: F(50) overflows uint32 (largest safe index is 47)",
			checkIs:     ErrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CalculationError{Mode: tt.mode, Cause: tt.cause}

			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if err.Unwrap() != tt.cause {
				t.Error("Unwrap should return the original cause")
			}
			if tt.checkIs != nil && !errors.Is(err, tt.checkIs) {
				t.Errorf("errors.Is should find %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()

	err := NewServerError("failed to start", errors.New("connection refused"))
	if err.Error() != "failed to start: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	var serverErr ServerError
	if !errors.As(err, &serverErr) {
		t.Fatal("expected error to be ServerError type")
	}
	if serverErr.Unwrap() == nil {
		t.Error("Unwrap should return the cause")
	}

	bare := ServerError{Message: "server stopped"}
	if bare.Error() != "server stopped" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
	if bare.Unwrap() != nil {
		t.Error("Unwrap should return nil when there's no cause")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		field       string
		message     string
		expectedMsg string
	}{
		{
			name:        "Error with field",
			field:       "n",
			message:     "must be a non-negative integer",
			expectedMsg: "validation error for 'n': must be a non-negative integer",
		},
		{
			name:        "Error without field",
			message:     "empty request",
			expectedMsg: "validation error: empty request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewValidationError(tt.field, tt.message, nil)
			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	base := errors.New("base")
	wrapped := WrapError(base, "step %d", 2)
	if wrapped.Error() != "step 2: base" {
		t.Errorf("unexpected message: %q", wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Canceled", context.Canceled, true},
		{"DeadlineExceeded", context.DeadlineExceeded, true},
		{"Wrapped canceled", fmt.Errorf("op: %w", context.Canceled), true},
		{"Overflow", ErrOverflow, false},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
