package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	apperrors "github.com/agbru/fibfixed/internal/errors"
)

func TestRun(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		contains string
	}{
		{name: "No arguments", args: []string{"fibfixed"}, wantCode: apperrors.ExitSuccess, wantOut: "55\n"},
		{name: "Explicit n", args: []string{"fibfixed", "-n", "20"}, wantCode: apperrors.ExitSuccess, wantOut: "6765\n"},
		{name: "Checked overflow", args: []string{"fibfixed", "-n", "48", "-mode", "checked"}, wantCode: apperrors.ExitErrorOverflow, wantOut: ""},
		{name: "Version", args: []string{"fibfixed", "--version"}, wantCode: apperrors.ExitSuccess, contains: "fibfixed"},
		{name: "Help", args: []string{"fibfixed", "-h"}, wantCode: apperrors.ExitSuccess, wantOut: ""},
		{name: "Bad flag", args: []string{"fibfixed", "-nope"}, wantCode: apperrors.ExitErrorConfig, wantOut: ""},
		{name: "Bad mode", args: []string{"fibfixed", "-mode", "modular"}, wantCode: apperrors.ExitErrorConfig, wantOut: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out, errOut bytes.Buffer
			code := run(context.Background(), tt.args, &out, &errOut)
			if code != tt.wantCode {
				t.Errorf("run(%v) = %d, want %d\nstderr:\n%s", tt.args, code, tt.wantCode, errOut.String())
			}
			if tt.contains != "" {
				if !strings.Contains(out.String(), tt.contains) {
					t.Errorf("stdout %q does not contain %q", out.String(), tt.contains)
				}
				return
			}
			if out.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}
