// Package service sits between the transports (HTTP server) and the
// fibonacci package: it validates requests, resolves the overflow mode and
// keeps recently computed results in an LRU cache.
package service

//go:generate mockgen -source=calculator_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	apperrors "github.com/agbru/fibfixed/internal/errors"
	"github.com/agbru/fibfixed/internal/fibonacci"
	"github.com/agbru/fibfixed/internal/logging"
)

var (
	// ErrMaxValueExceeded is returned when n exceeds the configured maximum limit.
	ErrMaxValueExceeded = errors.New("maximum n value exceeded")
)

// Result is the outcome of a successful calculation.
type Result struct {
	// Mode is the registry name of the calculator used.
	Mode string
	// N is the requested index.
	N uint32
	// Value is F(N) in the arithmetic of the mode.
	Value uint32
	// Exact is true when Value equals the mathematical F(N).
	Exact bool
	// Cached is true when the value was served from the cache.
	Cached bool
}

// Service defines the interface for Fibonacci calculation services.
type Service interface {
	// Calculate computes F(n) with the named overflow mode.
	Calculate(ctx context.Context, mode string, n uint32) (Result, error)

	// Modes returns the sorted names of the available overflow modes.
	Modes() []string
}

type cacheKey struct {
	mode string
	n    uint32
}

// CalculatorService handles validation, calculator lookup and caching.
// It is safe for concurrent use.
type CalculatorService struct {
	factory fibonacci.CalculatorFactory
	maxN    uint32
	cache   *lru.Cache[cacheKey, uint32]
	logger  logging.Logger
}

// Ensure CalculatorService implements Service interface.
var _ Service = (*CalculatorService)(nil)

// NewCalculatorService creates a new instance of CalculatorService.
//
// Parameters:
//   - factory: The factory to retrieve calculators from.
//   - maxN: The maximum allowed value for n (0 for no limit).
//   - cacheSize: The LRU capacity (0 disables caching).
//   - logger: Destination for debug events; nil discards them.
//
// Returns:
//   - *CalculatorService: The service.
//   - error: An error if the cache cannot be created.
func NewCalculatorService(factory fibonacci.CalculatorFactory, maxN uint32, cacheSize int, logger logging.Logger) (*CalculatorService, error) {
	s := &CalculatorService{
		factory: factory,
		maxN:    maxN,
		logger:  logger,
	}
	if s.logger == nil {
		s.logger = logging.NewStdLoggerAdapter(nil)
	}
	if cacheSize > 0 {
		cache, err := lru.New[cacheKey, uint32](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Modes returns the registered mode names.
func (s *CalculatorService) Modes() []string {
	return s.factory.List()
}

// Calculate validates n, serves cached values when possible and otherwise
// runs the requested calculator. Failures are returned wrapped in an
// apperrors.CalculationError carrying the mode.
func (s *CalculatorService) Calculate(ctx context.Context, mode string, n uint32) (Result, error) {
	if s.maxN > 0 && n > s.maxN {
		return Result{}, ErrMaxValueExceeded
	}

	key := cacheKey{mode: mode, n: n}
	exact := n <= fibonacci.MaxSafeIndex32
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			s.logger.Debug("cache hit", logging.String("mode", mode), logging.Uint32("n", n))
			return Result{Mode: mode, N: n, Value: v, Exact: exact, Cached: true}, nil
		}
	}

	calc, err := s.factory.Get(mode)
	if err != nil {
		return Result{}, err
	}

	v, err := calc.Calculate(ctx, n)
	if err != nil {
		return Result{}, apperrors.CalculationError{Mode: mode, Cause: err}
	}

	if s.cache != nil {
		s.cache.Add(key, v)
	}
	return Result{Mode: mode, N: n, Value: v, Exact: exact}, nil
}

// CacheLen reports the number of cached results.
func (s *CalculatorService) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	return s.cache.Len()
}
