package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/fibfixed/internal/cli"
	"github.com/agbru/fibfixed/internal/config"
	apperrors "github.com/agbru/fibfixed/internal/errors"
	"github.com/agbru/fibfixed/internal/fibonacci"
	"github.com/agbru/fibfixed/internal/logging"
	"github.com/agbru/fibfixed/internal/orchestration"
	"github.com/agbru/fibfixed/internal/server"
	"github.com/agbru/fibfixed/internal/ui"
	"github.com/agbru/fibfixed/pkg/models"
)

// Application represents the fibfixed application instance.
// It encapsulates the configuration and provides methods to run
// the application in CLI or server mode.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the overflow-mode calculators.
	Factory fibonacci.CalculatorFactory
	// ErrWriter is the writer for diagnostics and logs (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := fibonacci.GlobalFactory()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "fibfixed"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}
	logging.SetGlobalLevel(cfg.LogLevel)

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Respects --no-color, NO_COLOR and non-TTY stdout.
	ui.InitTheme(a.Config.NoColor)

	if a.Config.ServerMode {
		return a.runServer(ctx)
	}
	return a.runCalculate(ctx, out)
}

// runServer serves the HTTP API until a termination signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	srv, err := server.NewServer(a.Factory, a.Config,
		server.WithLogger(logging.NewLogger(a.ErrWriter, "server")),
		server.WithTimeouts(serverTimeouts(a.Config)))
	if err == nil {
		err = srv.Start(ctx)
	}
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// serverTimeouts applies the -timeout flag to each HTTP calculation.
func serverTimeouts(cfg config.AppConfig) server.Timeouts {
	timeouts := server.DefaultServerTimeouts()
	if cfg.Timeout > 0 {
		timeouts.RequestTimeout = cfg.Timeout
	}
	return timeouts
}

// runCalculate orchestrates the execution of the CLI calculation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancels := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancels.Cleanup()

	modes := cli.ModesToRun(a.Config, a.Factory)
	if len(modes) == 0 {
		fmt.Fprintf(a.ErrWriter, "No calculator registered for mode %q.\n", a.Config.Mode)
		return apperrors.ExitErrorConfig
	}

	if a.Config.Details && !a.Config.JSONOutput {
		cli.PrintExecutionConfig(a.Config, modes, out)
	}

	results := orchestration.ExecuteCalculations(ctx, a.Factory, modes, a.Config.N)

	if a.Config.JSONOutput {
		return a.printJSONResults(results, out)
	}
	return orchestration.AnalyzeComparisonResults(results, a.Config, out, a.ErrWriter)
}

// printJSONResults writes the results as JSON and derives the exit code from
// them the same way the text report does.
func (a *Application) printJSONResults(results []orchestration.CalculationResult, out io.Writer) int {
	output := make([]models.Result, len(results))
	for i, res := range results {
		output[i] = res.ToModel(a.Config.N)
	}
	if err := cli.DisplayJSONResults(out, output); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error encoding JSON output: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	best, mismatch := orchestration.Reconcile(results)
	switch {
	case best == nil:
		return apperrors.HandleCalculationError(orchestration.FirstError(results), 0, a.ErrWriter, ui.ColorProvider{})
	case mismatch:
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
// The application should exit with success after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
