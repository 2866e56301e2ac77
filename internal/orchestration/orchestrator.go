// Package orchestration runs one or more overflow modes for the same index
// and reconciles their results.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibfixed/internal/cli"
	"github.com/agbru/fibfixed/internal/config"
	apperrors "github.com/agbru/fibfixed/internal/errors"
	"github.com/agbru/fibfixed/internal/fibonacci"
	"github.com/agbru/fibfixed/internal/ui"
	"github.com/agbru/fibfixed/pkg/models"
)

// CalculationResult encapsulates the outcome of a single Fibonacci calculation.
// It serves as a standardized container for results from different modes,
// facilitating comparison and reporting.
type CalculationResult struct {
	// Mode is the registry name of the calculator ("wrap", "checked", ...).
	Mode string
	// Name is the display name of the calculator (e.g., "Checked (uint32)").
	Name string
	// Value is the computed Fibonacci number. It is zero if an error occurred.
	Value uint32
	// Duration is the time taken to complete the calculation.
	Duration time.Duration
	// Err contains any error that occurred during the calculation.
	Err error
}

// ToModel converts the result into its wire representation.
func (r CalculationResult) ToModel(n uint32) models.Result {
	duration := cli.FormatExecutionDuration(r.Duration)
	if r.Err != nil {
		return models.NewErrorResult(n, r.Mode, r.Err, duration)
	}
	return models.NewResult(n, r.Mode, r.Value, n <= fibonacci.MaxSafeIndex32, duration)
}

// ExecuteCalculations runs the calculators registered under modes
// concurrently and collects one result per mode, in the order of modes.
// A mode missing from the factory yields a result carrying the lookup error.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - factory: The factory the calculators are taken from.
//   - modes: The mode names to execute.
//   - n: The Fibonacci index.
//
// Returns:
//   - []CalculationResult: A slice containing the results of each calculation.
func ExecuteCalculations(ctx context.Context, factory fibonacci.CalculatorFactory, modes []string, n uint32) []CalculationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(modes))

	for i, mode := range modes {
		g.Go(func() error {
			calculator, err := factory.Get(mode)
			if err != nil {
				results[i] = CalculationResult{Mode: mode, Name: mode, Err: err}
				return nil
			}
			startTime := time.Now()
			value, err := calculator.Calculate(ctx, n)
			results[i] = CalculationResult{
				Mode: mode, Name: calculator.Name(), Value: value, Duration: time.Since(startTime), Err: err,
			}
			return nil
		})
	}

	// Workers never return an error; failures are carried in the results.
	_ = g.Wait()
	return results
}

// Reconcile returns the fastest successful result and reports whether the
// successful results disagree. It returns nil when every calculation failed.
func Reconcile(results []CalculationResult) (best *CalculationResult, mismatch bool) {
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if best == nil {
			best = &results[i]
			continue
		}
		if results[i].Value != best.Value {
			mismatch = true
		}
		if results[i].Duration < best.Duration {
			best = &results[i]
		}
	}
	return best, mismatch
}

// FirstError returns the first error found in results, or nil.
func FirstError(results []CalculationResult) error {
	for _, res := range results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// AnalyzeComparisonResults processes the results from one or more modes and
// prints the outcome.
//
// With several results, or when cfg.Details is set, a comparison table sorted
// by execution time is written first. When the successful results agree, the
// value is printed through cli.DisplayResult. Disagreeing results are a
// mismatch; when nothing succeeded the first error decides the exit code.
//
// Parameters:
//   - results: The slice of calculation results to analyze.
//   - cfg: The application configuration.
//   - out: The io.Writer for the report and the value.
//   - errOut: The io.Writer for failure messages.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []CalculationResult, cfg config.AppConfig, out, errOut io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	best, mismatch := Reconcile(results)
	if len(results) > 1 || cfg.Details || mismatch {
		printComparisonTable(results, out)
	}

	if best == nil {
		if len(results) > 1 {
			fmt.Fprintf(errOut, "Global Status: Failure. No mode could complete the calculation.\n")
		}
		return apperrors.HandleCalculationError(FirstError(results), 0, errOut, ui.ColorProvider{})
	}
	if mismatch {
		fmt.Fprintf(errOut, "Global Status: %sMismatch%s. F(%d) does not fit in uint32 and the overflow modes disagree.\n",
			ui.ColorRed(), ui.ColorReset(), cfg.N)
		return apperrors.ExitErrorMismatch
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "Global Status: Success. All valid results are consistent.\n\n")
	}
	cli.DisplayResult(out, best.Value, cfg.N, best.Mode, best.Duration, cfg.N <= fibonacci.MaxSafeIndex32, cfg.Details)
	return apperrors.ExitSuccess
}

func printComparisonTable(results []CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sMode%s\t%sDuration%s\t%sResult%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var value, status string
		if res.Err != nil {
			value = "-"
			status = fmt.Sprintf("%sFailure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			value = fmt.Sprintf("%d", res.Value)
			status = fmt.Sprintf("%sSuccess%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\t%s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(),
			ui.ColorYellow(), cli.FormatExecutionDuration(res.Duration), ui.ColorReset(),
			value, status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
	fmt.Fprintln(out)
}
