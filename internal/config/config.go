// Package config provides the configuration management for fibfixed.
// It defines the data structure for the configuration, handles the parsing of
// command-line arguments, and performs validation on the configuration values.
package config

import (
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibfixed/internal/errors"
	"github.com/agbru/fibfixed/internal/fibonacci"
)

const (
	// EnvPrefix is the prefix for all environment variables used by fibfixed.
	EnvPrefix = "FIBFIXED_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultN is the Fibonacci index computed when none is given.
	DefaultN uint32 = 10
	// DefaultMode is the overflow mode used when none is given.
	DefaultMode = fibonacci.ModeWrap
	// ModeAll runs every registered mode and compares the results.
	ModeAll = "all"
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout = 30 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultLogLevel keeps stderr quiet unless something goes wrong.
	DefaultLogLevel = "warn"
	// DefaultCacheSize is the number of results kept by the server's LRU cache.
	DefaultCacheSize = 128
)

// AppConfig aggregates the application's configuration parameters, parsed from
// command-line flags and FIBFIXED_* environment variables.
type AppConfig struct {
	// N is the index of the Fibonacci number to be calculated.
	N uint32
	// Mode is the overflow mode ("wrap", "checked", "saturate") or "all".
	Mode string
	// Timeout sets the maximum duration for the calculation.
	Timeout time.Duration
	// JSONOutput, if true, outputs the result in JSON format.
	JSONOutput bool
	// Details, if true, prints a report with timing and the comparison table.
	Details bool
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// LogLevel is the minimum zerolog level written to stderr.
	LogLevel string
	// NoColor, if true, disables all color output.
	NoColor bool
	// CacheSize is the capacity of the server's result cache (0 disables it).
	CacheSize int
	// MaxN rejects server requests with a larger index (0 means no limit).
	MaxN uint32
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Parameters:
//   - availableModes: The registered calculator names.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate(availableModes []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.CacheSize < 0 {
		return apperrors.NewConfigError("cache size cannot be negative: %d", c.CacheSize)
	}
	if c.ServerMode && c.Port == "" {
		return apperrors.NewConfigError("port must not be empty in server mode")
	}
	if c.Mode != ModeAll && !slices.Contains(availableModes, c.Mode) {
		return apperrors.NewConfigError("unrecognized mode: '%s'. Valid modes are: 'all' or [%s]", c.Mode, strings.Join(availableModes, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig.
// Flags take precedence over FIBFIXED_* environment variables, which take
// precedence over the defaults.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//   - availableModes: The registered calculator names, for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp, a flag parse error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableModes []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	modeHelp := fmt.Sprintf("Overflow mode: one of [%s] or 'all' to compare them.", strings.Join(availableModes, ", "))

	config := AppConfig{}
	var n, maxN uint64
	fs.Uint64Var(&n, "n", uint64(DefaultN), "Index n of the Fibonacci number to calculate.")
	fs.StringVar(&config.Mode, "mode", DefaultMode, modeHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the calculation.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output the result in JSON format.")
	fs.BoolVar(&config.Details, "d", false, "Display timing details and the comparison table.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.IntVar(&config.CacheSize, "cache-size", DefaultCacheSize, "Number of results cached in server mode (0 disables the cache).")
	fs.Uint64Var(&maxN, "max-n", 0, "Largest index accepted in server mode (0 for no limit).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// Apply environment variable overrides for flags not explicitly set
	n, maxN = applyEnvOverrides(&config, fs, n, maxN)

	config.Mode = normalizeMode(config.Mode)
	err := assignIndexes(&config, n, maxN)
	if err == nil {
		err = config.Validate(availableModes)
	}
	if err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

func assignIndexes(config *AppConfig, n, maxN uint64) error {
	if n > math.MaxUint32 {
		return apperrors.NewConfigError("index n must fit in 32 bits: %d", n)
	}
	if maxN > math.MaxUint32 {
		return apperrors.NewConfigError("max-n must fit in 32 bits: %d", maxN)
	}
	config.N = uint32(n)
	config.MaxN = uint32(maxN)
	return nil
}

func normalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == ModeAll {
		return mode
	}
	if canonical, err := fibonacci.ParseMode(mode); err == nil {
		return canonical
	}
	return mode
}
