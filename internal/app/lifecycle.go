package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupSignals returns a context canceled on SIGINT or SIGTERM.
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// CancelFuncs holds the cancel functions created by SetupLifecycle.
type CancelFuncs struct {
	// CancelTimeout releases the deadline timer.
	CancelTimeout context.CancelFunc
	// StopSignals stops listening for OS signals.
	StopSignals context.CancelFunc
}

// SetupLifecycle bounds a CLI calculation: the returned context ends when the
// timeout expires or a termination signal arrives. A non-positive timeout
// means no deadline.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration for the operation.
//
// Returns:
//   - context.Context: A context with both timeout and signal handling.
//   - *CancelFuncs: Cleanup handles; call Cleanup when done.
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *CancelFuncs) {
	var cancelTimeout context.CancelFunc
	if timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancelTimeout = context.WithCancel(ctx)
	}
	ctx, stopSignals := SetupSignals(ctx)

	return ctx, &CancelFuncs{
		CancelTimeout: cancelTimeout,
		StopSignals:   stopSignals,
	}
}

// Cleanup calls both cancel functions. It is safe on a zero value.
func (c *CancelFuncs) Cleanup() {
	if c.StopSignals != nil {
		c.StopSignals()
	}
	if c.CancelTimeout != nil {
		c.CancelTimeout()
	}
}
