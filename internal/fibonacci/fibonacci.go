// Package fibonacci computes Fibonacci numbers in fixed-width unsigned
// integer arithmetic.
//
// The core routine is iterative: it keeps the two most recent terms of the
// sequence and advances them n-1 times, so it runs in O(n) time and O(1)
// auxiliary space. Three overflow policies are offered on top of it:
//
//   - wrapping: additions silently discard carry bits (Fibonacci, Fibonacci64, Compute)
//   - checked: the first carry aborts the computation with an overflow error (Checked)
//   - saturating: the first carry clamps the result to the width's maximum (Saturating)
//
// For 32-bit results F(47) = 2971215073 is the last representable term; for
// 64-bit results it is F(93).
package fibonacci

import (
	"context"
	"math/bits"

	apperrors "github.com/agbru/fibfixed/internal/errors"
)

// MaxSafeIndex32 is the largest n for which F(n) fits in a uint32.
const MaxSafeIndex32 = 47

// MaxSafeIndex64 is the largest n for which F(n) fits in a uint64.
const MaxSafeIndex64 = 93

// Unsigned is the set of fixed-width unsigned integer types the routines
// accept. The index and the result share the same type.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Fibonacci returns F(n) computed in uint32 arithmetic, with F(0) = 0 and
// F(1) = 1. Results for n > MaxSafeIndex32 wrap around modulo 2^32.
func Fibonacci(n uint32) uint32 {
	return Compute(n)
}

// Fibonacci64 returns F(n) computed in uint64 arithmetic. Results for
// n > MaxSafeIndex64 wrap around modulo 2^64.
func Fibonacci64(n uint64) uint64 {
	return Compute(n)
}

// Compute returns F(n) in the arithmetic of T, wrapping on overflow.
func Compute[T Unsigned](n T) T {
	if n < 2 {
		return n
	}
	var prev, curr T = 0, 1
	for i := n; i > 1; i-- {
		prev, curr = curr, prev+curr
	}
	return curr
}

// cancelCheckInterval is the number of loop steps between two context polls.
const cancelCheckInterval = 1 << 16

// ComputeContext is Compute for long wrapping runs: ctx is polled every
// cancelCheckInterval steps and its error is returned once it is done.
func ComputeContext[T Unsigned](ctx context.Context, n T) (T, error) {
	if n < 2 {
		return n, nil
	}
	var prev, curr T = 0, 1
	for i := n; i > 1; i-- {
		if uint64(i)&(cancelCheckInterval-1) == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		prev, curr = curr, prev+curr
	}
	return curr, nil
}

// Checked returns F(n) in the arithmetic of T, or an *apperrors.OverflowError
// (matching apperrors.ErrOverflow) as soon as an addition carries out of the
// width. The iteration stops at the first carry, so large n fail quickly.
func Checked[T Unsigned](n T) (T, error) {
	if n < 2 {
		return n, nil
	}
	var prev, curr T = 0, 1
	for i := n; i > 1; i-- {
		next := prev + curr
		// prev <= curr for every k >= 1, so a carry leaves next below curr.
		if next < curr {
			return 0, apperrors.NewOverflowError(uint64(n), Width[T](), uint64(MaxSafeIndex[T]()))
		}
		prev, curr = curr, next
	}
	return curr, nil
}

// Saturating returns F(n) in the arithmetic of T, clamped to the maximum
// value of T when the exact result does not fit.
func Saturating[T Unsigned](n T) T {
	v, err := Checked(n)
	if err != nil {
		return ^T(0)
	}
	return v
}

// MaxSafeIndex returns the largest n whose F(n) is representable in T.
func MaxSafeIndex[T Unsigned]() T {
	var prev, curr T = 0, 1
	var k T = 1
	for {
		next := prev + curr
		if next < curr {
			return k
		}
		prev, curr = curr, next
		k++
	}
}

// Width returns the number of bits in T.
func Width[T Unsigned]() int {
	return bits.Len64(uint64(^T(0)))
}
