package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnvString returns the value of the environment variable with the given key
// (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the prefixed environment variable parsed as uint64,
// or the default value if not set or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the prefixed environment variable parsed as int,
// or the default value if not set or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the prefixed environment variable parsed as bool.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the prefixed environment variable parsed as
// time.Duration ("5m", "30s", "1h30m"), or the default value.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// Priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables:
//   - FIBFIXED_N: Fibonacci index (uint32)
//   - FIBFIXED_MODE: wrap, checked, saturate or all
//   - FIBFIXED_TIMEOUT: calculation timeout ("30s")
//   - FIBFIXED_JSON, FIBFIXED_DETAILS, FIBFIXED_SERVER, FIBFIXED_NO_COLOR (bool)
//   - FIBFIXED_PORT: server port
//   - FIBFIXED_LOG_LEVEL: zerolog level name
//   - FIBFIXED_CACHE_SIZE: server cache capacity (int)
//   - FIBFIXED_MAX_N: server index limit (uint32)
//
// The index values are returned rather than stored so that the 32-bit range
// check runs on env values too.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet, n, maxN uint64) (uint64, uint64) {
	if !isFlagSet(fs, "n") {
		n = getEnvUint64("N", n)
	}
	if !isFlagSet(fs, "max-n") {
		maxN = getEnvUint64("MAX_N", maxN)
	}
	if !isFlagSet(fs, "cache-size") {
		config.CacheSize = getEnvInt("CACHE_SIZE", config.CacheSize)
	}
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "mode") {
		config.Mode = getEnvString("MODE", config.Mode)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
	if !isFlagSet(fs, "log-level") {
		config.LogLevel = getEnvString("LOG_LEVEL", config.LogLevel)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "d", "details") {
		config.Details = getEnvBool("DETAILS", config.Details)
	}
	if !isFlagSet(fs, "server") {
		config.ServerMode = getEnvBool("SERVER", config.ServerMode)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
	return n, maxN
}
