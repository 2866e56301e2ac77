package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibfixed/internal/config"
	"github.com/agbru/fibfixed/internal/fibonacci"
	"github.com/agbru/fibfixed/internal/ui"
)

// ModesToRun determines which overflow modes should be executed based on
// the configuration. "all" expands to every registered mode in sorted order;
// an unknown mode yields nil.
//
// Parameters:
//   - cfg: The application configuration containing the mode selection.
//   - factory: The calculator factory to check modes against.
//
// Returns:
//   - []string: The mode names to execute.
func ModesToRun(cfg config.AppConfig, factory fibonacci.CalculatorFactory) []string {
	if cfg.Mode == config.ModeAll {
		return factory.List() // List() returns sorted keys
	}
	if _, err := factory.Get(cfg.Mode); err == nil {
		return []string{cfg.Mode}
	}
	return nil
}

// PrintExecutionConfig displays the current execution configuration to the user.
//
// Parameters:
//   - cfg: The application configuration.
//   - modes: The modes that will be executed.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, modes []string, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %sF(%d)%s in uint32 arithmetic with a timeout of %s%s%s.\n",
		ui.ColorBlue(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: Go %s, %s/%s.\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	if len(modes) > 1 {
		fmt.Fprintf(out, "Execution mode: comparison of %d overflow modes.\n\n", len(modes))
	} else if len(modes) == 1 {
		fmt.Fprintf(out, "Execution mode: single calculation in %s%s%s mode.\n\n", ui.ColorGreen(), modes[0], ui.ColorReset())
	}
}
