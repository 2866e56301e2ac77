package fibonacci

import (
	"errors"
	"math"
	"sync"
	"testing"

	apperrors "github.com/agbru/fibfixed/internal/errors"
)

func TestFibonacciKnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint32
		want uint32
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{10, 55},
		{20, 6765},
		{46, 1836311903},
		{47, 2971215073},
	}
	for _, tt := range tests {
		if got := Fibonacci(tt.n); got != tt.want {
			t.Errorf("Fibonacci(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestFibonacciWrapsPastUint32(t *testing.T) {
	t.Parallel()
	// F(48) = 4807526976, F(50) = 12586269025.
	if got, want := Fibonacci(48), uint32(4807526976%(1<<32)); got != want {
		t.Errorf("Fibonacci(48) = %d, want %d", got, want)
	}
	if got, want := Fibonacci(50), uint32(12586269025%(1<<32)); got != want {
		t.Errorf("Fibonacci(50) = %d, want %d", got, want)
	}
}

func TestFibonacci64(t *testing.T) {
	t.Parallel()
	if got := Fibonacci64(93); got != 12200160415121876738 {
		t.Errorf("Fibonacci64(93) = %d", got)
	}
	// F(94) = 19740274219868223167 wraps modulo 2^64.
	if got := Fibonacci64(94); got != 1293530146158671551 {
		t.Errorf("Fibonacci64(94) = %d", got)
	}
}

func TestCheckedBoundary(t *testing.T) {
	t.Parallel()

	v, err := Checked(uint32(MaxSafeIndex32))
	if err != nil {
		t.Fatalf("Checked(47) returned error: %v", err)
	}
	if v != 2971215073 {
		t.Errorf("Checked(47) = %d", v)
	}

	for _, n := range []uint32{48, 100, math.MaxUint32} {
		v, err := Checked(n)
		if !errors.Is(err, apperrors.ErrOverflow) {
			t.Fatalf("Checked(%d) error = %v, want overflow", n, err)
		}
		if v != 0 {
			t.Errorf("Checked(%d) value = %d, want 0 on error", n, v)
		}
		var overflowErr *apperrors.OverflowError
		if !errors.As(err, &overflowErr) {
			t.Fatalf("Checked(%d) error is %T", n, err)
		}
		if overflowErr.N != uint64(n) || overflowErr.Bits != 32 || overflowErr.MaxSafe != MaxSafeIndex32 {
			t.Errorf("unexpected overflow details: %+v", overflowErr)
		}
	}

	if _, err := Checked(uint64(MaxSafeIndex64)); err != nil {
		t.Errorf("Checked[uint64](93) returned error: %v", err)
	}
	if _, err := Checked(uint64(MaxSafeIndex64 + 1)); !apperrors.IsOverflow(err) {
		t.Errorf("Checked[uint64](94) error = %v, want overflow", err)
	}
}

func TestSaturating(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint32
		want uint32
	}{
		{0, 0},
		{10, 55},
		{47, 2971215073},
		{48, math.MaxUint32},
		{1000, math.MaxUint32},
	}
	for _, tt := range tests {
		if got := Saturating(tt.n); got != tt.want {
			t.Errorf("Saturating(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestGenericWidths(t *testing.T) {
	t.Parallel()

	if got := MaxSafeIndex[uint8](); got != 13 {
		t.Errorf("MaxSafeIndex[uint8] = %d, want 13", got)
	}
	if got := MaxSafeIndex[uint16](); got != 24 {
		t.Errorf("MaxSafeIndex[uint16] = %d, want 24", got)
	}
	if got := MaxSafeIndex[uint32](); got != MaxSafeIndex32 {
		t.Errorf("MaxSafeIndex[uint32] = %d, want %d", got, MaxSafeIndex32)
	}
	if got := MaxSafeIndex[uint64](); got != MaxSafeIndex64 {
		t.Errorf("MaxSafeIndex[uint64] = %d, want %d", got, MaxSafeIndex64)
	}

	if got := Compute(uint8(13)); got != 233 {
		t.Errorf("Compute[uint8](13) = %d", got)
	}
	// 377 mod 256
	if got := Compute(uint8(14)); got != 121 {
		t.Errorf("Compute[uint8](14) = %d", got)
	}
	if _, err := Checked(uint8(14)); !apperrors.IsOverflow(err) {
		t.Errorf("Checked[uint8](14) error = %v", err)
	}
	if got := Saturating(uint16(30)); got != math.MaxUint16 {
		t.Errorf("Saturating[uint16](30) = %d", got)
	}

	if Width[uint8]() != 8 || Width[uint16]() != 16 || Width[uint32]() != 32 || Width[uint64]() != 64 {
		t.Error("Width reported an unexpected bit count")
	}
}

func TestFibonacciConcurrentCallers(t *testing.T) {
	t.Parallel()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan uint32, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset uint32) {
			defer wg.Done()
			for n := uint32(0); n <= MaxSafeIndex32; n++ {
				idx := (n + offset) % (MaxSafeIndex32 + 1)
				if idx >= 2 && Fibonacci(idx) != Fibonacci(idx-1)+Fibonacci(idx-2) {
					errs <- idx
					return
				}
			}
		}(uint32(w))
	}
	wg.Wait()
	close(errs)
	for idx := range errs {
		t.Errorf("recurrence failed at %d under concurrency", idx)
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"wrap", ModeWrap, false},
		{"wrapping", ModeWrap, false},
		{"checked", ModeChecked, false},
		{"strict", ModeChecked, false},
		{"saturate", ModeSaturate, false},
		{"saturating", ModeSaturate, false},
		{"all", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func BenchmarkFibonacci(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Fibonacci(MaxSafeIndex32)
	}
}

func BenchmarkChecked(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Checked(uint32(MaxSafeIndex32))
	}
}
