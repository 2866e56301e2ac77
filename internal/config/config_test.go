package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibfixed/internal/errors"
)

var availableModes = []string{"checked", "saturate", "wrap"}

func TestParseConfig(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		t.Parallel()
		cfg, err := ParseConfig("fibfixed", nil, io.Discard, availableModes)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.N != 10 {
			t.Errorf("Expected default N 10, got %d", cfg.N)
		}
		if cfg.Mode != "wrap" {
			t.Errorf("Expected default Mode 'wrap', got %s", cfg.Mode)
		}
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("Expected default Timeout %v, got %v", DefaultTimeout, cfg.Timeout)
		}
		if cfg.JSONOutput || cfg.Details || cfg.ServerMode || cfg.NoColor {
			t.Errorf("Expected boolean flags to default to false: %+v", cfg)
		}
		if cfg.Port != DefaultPort || cfg.LogLevel != DefaultLogLevel || cfg.CacheSize != DefaultCacheSize || cfg.MaxN != 0 {
			t.Errorf("Unexpected defaults: %+v", cfg)
		}
	})

	t.Run("ValidFlags", func(t *testing.T) {
		t.Parallel()
		args := []string{
			"-n", "47",
			"-mode", "checked",
			"-timeout", "10s",
			"-json",
			"-details",
			"-server",
			"-port", "9090",
			"-log-level", "debug",
			"-no-color",
			"-cache-size", "16",
			"-max-n", "1000",
		}
		cfg, err := ParseConfig("fibfixed", args, io.Discard, availableModes)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := AppConfig{
			N:          47,
			Mode:       "checked",
			Timeout:    10 * time.Second,
			JSONOutput: true,
			Details:    true,
			ServerMode: true,
			Port:       "9090",
			LogLevel:   "debug",
			NoColor:    true,
			CacheSize:  16,
			MaxN:       1000,
		}
		if cfg != want {
			t.Errorf("ParseConfig() = %+v, want %+v", cfg, want)
		}
	})

	t.Run("ModeAliasesAndCase", func(t *testing.T) {
		t.Parallel()
		tests := map[string]string{
			"ALL":        "all",
			"Saturating": "saturate",
			"strict":     "checked",
			" wrap ":     "wrap",
		}
		for in, want := range tests {
			cfg, err := ParseConfig("fibfixed", []string{"-mode", in}, io.Discard, availableModes)
			if err != nil {
				t.Fatalf("mode %q: unexpected error: %v", in, err)
			}
			if cfg.Mode != want {
				t.Errorf("mode %q normalized to %q, want %q", in, cfg.Mode, want)
			}
		}
	})

	t.Run("InvalidValues", func(t *testing.T) {
		t.Parallel()
		tests := []struct {
			name       string
			args       []string
			wantConfig bool
		}{
			{"Unknown mode", []string{"-mode", "bogus"}, true},
			{"Zero timeout", []string{"-timeout", "0s"}, true},
			{"Negative cache", []string{"-cache-size", "-1"}, true},
			{"N beyond uint32", []string{"-n", "4294967296"}, true},
			{"MaxN beyond uint32", []string{"-max-n", "4294967296"}, true},
			{"Empty port in server mode", []string{"-server", "-port", ""}, true},
			{"Negative n", []string{"-n", "-1"}, false},
			{"Unknown flag", []string{"-bogus"}, false},
		}
		for _, tt := range tests {
			var stderr bytes.Buffer
			_, err := ParseConfig("fibfixed", tt.args, &stderr, availableModes)
			if err == nil {
				t.Errorf("%s: expected an error", tt.name)
				continue
			}
			var configErr apperrors.ConfigError
			if got := errors.As(err, &configErr); got != tt.wantConfig {
				t.Errorf("%s: ConfigError = %v, want %v (err: %v)", tt.name, got, tt.wantConfig, err)
			}
			if tt.wantConfig && !strings.Contains(stderr.String(), "Configuration error:") {
				t.Errorf("%s: expected configuration error on stderr, got %q", tt.name, stderr.String())
			}
		}
	})

	t.Run("Help", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		_, err := ParseConfig("fibfixed", []string{"-h"}, &stderr, availableModes)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("expected flag.ErrHelp, got %v", err)
		}
		out := stderr.String()
		for _, want := range []string{"Usage:", "-n", "-mode", "(default wrap)"} {
			if !strings.Contains(out, want) {
				t.Errorf("usage output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FIBFIXED_N", "20")
	t.Setenv("FIBFIXED_MODE", "saturate")
	t.Setenv("FIBFIXED_TIMEOUT", "1m")
	t.Setenv("FIBFIXED_JSON", "yes")
	t.Setenv("FIBFIXED_DETAILS", "1")
	t.Setenv("FIBFIXED_PORT", "7070")
	t.Setenv("FIBFIXED_LOG_LEVEL", "info")
	t.Setenv("FIBFIXED_CACHE_SIZE", "4")
	t.Setenv("FIBFIXED_MAX_N", "47")
	t.Setenv("FIBFIXED_NO_COLOR", "true")
	t.Setenv("FIBFIXED_SERVER", "false")

	cfg, err := ParseConfig("fibfixed", nil, io.Discard, availableModes)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := AppConfig{
		N:          20,
		Mode:       "saturate",
		Timeout:    time.Minute,
		JSONOutput: true,
		Details:    true,
		Port:       "7070",
		LogLevel:   "info",
		NoColor:    true,
		CacheSize:  4,
		MaxN:       47,
	}
	if cfg != want {
		t.Errorf("ParseConfig() = %+v, want %+v", cfg, want)
	}
}

func TestFlagsTakePrecedenceOverEnv(t *testing.T) {
	t.Setenv("FIBFIXED_N", "20")
	t.Setenv("FIBFIXED_MODE", "saturate")
	t.Setenv("FIBFIXED_DETAILS", "true")

	cfg, err := ParseConfig("fibfixed", []string{"-n", "5", "-mode", "checked", "-d=false"}, io.Discard, availableModes)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.N != 5 || cfg.Mode != "checked" || cfg.Details {
		t.Errorf("flags should win over env: %+v", cfg)
	}
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("FIBFIXED_N", "not-a-number")
	t.Setenv("FIBFIXED_TIMEOUT", "soon")
	t.Setenv("FIBFIXED_JSON", "maybe")
	t.Setenv("FIBFIXED_CACHE_SIZE", "many")

	cfg, err := ParseConfig("fibfixed", nil, io.Discard, availableModes)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.N != DefaultN || cfg.Timeout != DefaultTimeout || cfg.JSONOutput || cfg.CacheSize != DefaultCacheSize {
		t.Errorf("invalid env values should be ignored: %+v", cfg)
	}
}

func TestEnvIndexOutOfRange(t *testing.T) {
	t.Setenv("FIBFIXED_N", "5000000000")

	_, err := ParseConfig("fibfixed", nil, io.Discard, availableModes)
	var configErr apperrors.ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}
