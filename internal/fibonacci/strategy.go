package fibonacci

import (
	"context"
	"fmt"
)

// Registry names of the built-in overflow modes.
const (
	ModeWrap     = "wrap"
	ModeChecked  = "checked"
	ModeSaturate = "saturate"
)

// coreCalculator defines the internal interface for a pure calculation
// strategy. Implementations carry no state and are safe for concurrent use.
// Long-running strategies return ctx.Err() once ctx is done.
type coreCalculator interface {
	CalculateCore(ctx context.Context, n uint32) (uint32, error)
	Name() string
}

// WrappingCalculator reproduces plain uint32 arithmetic: results past
// MaxSafeIndex32 wrap modulo 2^32 and no error is ever reported.
type WrappingCalculator struct{}

// Name returns the display name of the strategy.
func (WrappingCalculator) Name() string { return "Wrapping (uint32)" }

// CalculateCore returns F(n) mod 2^32. The loop runs n-1 times, so it
// observes ctx cancellation.
func (WrappingCalculator) CalculateCore(ctx context.Context, n uint32) (uint32, error) {
	return ComputeContext(ctx, n)
}

// CheckedCalculator reports an overflow error instead of wrapping.
type CheckedCalculator struct{}

// Name returns the display name of the strategy.
func (CheckedCalculator) Name() string { return "Checked (uint32)" }

// CalculateCore returns F(n) or an overflow error. It stops at the first
// carry, after at most MaxSafeIndex32 steps, so ctx is not polled.
func (CheckedCalculator) CalculateCore(_ context.Context, n uint32) (uint32, error) {
	return Checked(n)
}

// SaturatingCalculator clamps overflowing results to math.MaxUint32.
type SaturatingCalculator struct{}

// Name returns the display name of the strategy.
func (SaturatingCalculator) Name() string { return "Saturating (uint32)" }

// CalculateCore returns min(F(n), math.MaxUint32). Like the checked
// strategy it is bounded by the first carry.
func (SaturatingCalculator) CalculateCore(_ context.Context, n uint32) (uint32, error) {
	return Saturating(n), nil
}

// ParseMode normalizes a user-provided mode name. It accepts the registry
// names plus a few aliases ("wrapping", "saturating", "strict").
func ParseMode(s string) (string, error) {
	switch s {
	case ModeWrap, "wrapping":
		return ModeWrap, nil
	case ModeChecked, "strict":
		return ModeChecked, nil
	case ModeSaturate, "saturating":
		return ModeSaturate, nil
	}
	return "", fmt.Errorf("unknown mode: %q", s)
}
