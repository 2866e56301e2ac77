// Package testutil holds helpers shared by the command-level tests.
package testutil

import (
	"regexp"
	"strings"
	"testing"
)

// ansiRegex matches CSI escape sequences such as the theme colors.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape codes from a string.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// AssertContainsAll fails the test for every substring of wants missing from
// output once colors are stripped.
func AssertContainsAll(t testing.TB, output string, wants ...string) {
	t.Helper()
	plain := StripAnsiCodes(output)
	for _, want := range wants {
		if !strings.Contains(plain, want) {
			t.Errorf("output missing %q:\n%s", want, plain)
		}
	}
}
