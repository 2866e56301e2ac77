package fibonacci

//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/fibfixed/internal/errors"
)

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibfixed_calculations_total",
			Help: "The total number of Fibonacci calculations processed",
		},
		[]string{"mode", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fibfixed_calculation_duration_seconds",
			Help:    "The duration of Fibonacci calculations in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-7, 10, 9),
		},
		[]string{"mode"},
	)
)

// Calculator defines the public interface for a Fibonacci calculator.
// It is the abstraction used by the service, server and orchestration layers
// to interact with the different overflow modes.
type Calculator interface {
	// Calculate returns F(n). Implementations are safe for concurrent use.
	// A cancelled or expired context yields its error, also mid-computation.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation and tracing.
	//   - n: The index of the Fibonacci number to calculate.
	//
	// Returns:
	//   - uint32: The calculated Fibonacci number.
	//   - error: An overflow or context error, if any.
	Calculate(ctx context.Context, n uint32) (uint32, error)

	// Name returns the display name of the calculator (e.g., "Checked (uint32)").
	Name() string
}

// FibCalculator is an implementation of the Calculator interface that uses the
// Decorator design pattern. It wraps a coreCalculator to add tracing, metrics
// and debug logging around the pure computation.
type FibCalculator struct {
	core coreCalculator
}

// NewCalculator constructs a FibCalculator around the given strategy.
// It panics if core is nil.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("fibonacci: the `coreCalculator` implementation cannot be nil")
	}
	return &FibCalculator{core: core}
}

// Name returns the name of the encapsulated coreCalculator.
func (c *FibCalculator) Name() string {
	return c.core.Name()
}

// Calculate runs the wrapped strategy inside an OpenTelemetry span and
// records the outcome in the fibfixed_calculations_total and
// fibfixed_calculation_duration_seconds collectors.
func (c *FibCalculator) Calculate(ctx context.Context, n uint32) (result uint32, err error) {
	ctx, span := otel.Tracer("fibonacci").Start(ctx, "Calculate")
	defer span.End()
	span.SetAttributes(
		attribute.String("fibonacci.mode", c.core.Name()),
		attribute.Int64("fibonacci.n", int64(n)),
	)

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := statusLabel(err)
		name := c.core.Name()
		calculationsTotal.WithLabelValues(name, status).Inc()
		calculationDuration.WithLabelValues(name).Observe(duration)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int64("fibonacci.result", int64(result)))
		}

		log.Debug().
			Str("mode", name).
			Uint32("n", n).
			Uint32("result", result).
			Float64("duration", duration).
			Str("status", status).
			Msg("calculation completed")
	}()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	return c.core.CalculateCore(ctx, n)
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsOverflow(err):
		return "overflow"
	case apperrors.IsContextError(err):
		return "canceled"
	default:
		return "error"
	}
}
