// Package app wires configuration, calculators, output and the HTTP server
// into the fibfixed command.
package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/agbru/fibfixed/internal/fibonacci"
)

// Release metadata, overridden at link time:
//
//	go build -ldflags="-X github.com/agbru/fibfixed/internal/app.Version=v0.3.0 -X github.com/agbru/fibfixed/internal/app.Commit=$(git rev-parse --short HEAD)" ./cmd/fibfixed
//
// Values left unset are filled from the module build info when the binary
// was produced by `go install` or a VCS checkout.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args contain --version, -version or -V.
// It is checked before flag parsing so the flag works in any position.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// VersionData describes the running binary and the arithmetic it implements.
type VersionData struct {
	Version      string   `json:"version"`
	Commit       string   `json:"commit"`
	BuildDate    string   `json:"build_date"`
	GoVersion    string   `json:"go_version"`
	Platform     string   `json:"platform"`
	Width        int      `json:"width"`
	MaxSafeIndex uint32   `json:"max_safe_index"`
	Modes        []string `json:"modes"`
}

// GetVersionInfo collects the release metadata, falling back to the module
// build info for fields that were not set with -ldflags.
func GetVersionInfo() VersionData {
	info := VersionData{
		Version:      Version,
		Commit:       Commit,
		BuildDate:    BuildDate,
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
		Width:        fibonacci.Width[uint32](),
		MaxSafeIndex: fibonacci.MaxSafeIndex32,
		Modes:        fibonacci.GlobalFactory().List(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(&info, bi)
	}
	return info
}

// applyBuildInfo fills placeholder fields from bi.
func applyBuildInfo(info *VersionData, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" && s.Value != "" {
				info.Commit = s.Value
				if len(info.Commit) > 12 {
					info.Commit = info.Commit[:12]
				}
			}
		case "vcs.time":
			if info.BuildDate == "unknown" && s.Value != "" {
				info.BuildDate = s.Value
			}
		}
	}
}

// PrintVersion writes the version report to out.
func PrintVersion(out io.Writer) {
	info := GetVersionInfo()
	fmt.Fprintf(out, "fibfixed %s\n", info.Version)
	fmt.Fprintf(out, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(out, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(out, "  Go version: %s (%s)\n", info.GoVersion, info.Platform)
	fmt.Fprintf(out, "  Arithmetic: uint%d, exact up to F(%d)\n", info.Width, info.MaxSafeIndex)
	fmt.Fprintf(out, "  Modes:      %s\n", strings.Join(info.Modes, ", "))
}
