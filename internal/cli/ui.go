// The cli package formats calculation results for the terminal: the plain
// decimal line printed by default, the optional details block, and the JSON
// record used for scripting.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibfixed/internal/ui"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// DisplayResult prints F(n) as a single decimal line. When details is true it
// follows the line with a short analysis: mode, timing, digit count and
// whether the value is exact or was reduced by the mode's overflow policy.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - value: The calculated value.
//   - n: The index of the Fibonacci number calculated.
//   - mode: The overflow mode that produced value.
//   - duration: The time taken for the calculation.
//   - exact: Whether value equals the mathematical F(n).
//   - details: If true, prints the analysis block.
func DisplayResult(out io.Writer, value, n uint32, mode string, duration time.Duration, exact, details bool) {
	fmt.Fprintln(out, value)
	if !details {
		return
	}

	digits := strconv.FormatUint(uint64(value), 10)
	fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Mode                  : %s%s%s\n", ui.ColorBlue(), mode, ui.ColorReset())
	fmt.Fprintf(out, "Calculation time      : %s%s%s\n", ui.ColorGreen(), FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "Number of digits      : %d\n", len(digits))
	fmt.Fprintf(out, "F(%d)%s= %s\n", n, padding(n), formatNumberString(digits))
	if exact {
		fmt.Fprintf(out, "Exact                 : %syes%s\n", ui.ColorGreen(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Exact                 : %sno (%s)%s\n", ui.ColorYellow(), inexactReason(mode), ui.ColorReset())
	}
}

func inexactReason(mode string) string {
	if mode == "saturate" {
		return "clamped to the uint32 maximum"
	}
	return "reduced modulo 2^32"
}

// padding aligns "F(n)" with the other labels of the details block.
func padding(n uint32) string {
	const labelWidth = 22
	w := labelWidth - len("F()") - len(strconv.FormatUint(uint64(n), 10))
	if w < 1 {
		w = 1
	}
	return strings.Repeat(" ", w)
}

// formatNumberString inserts thousand separators into a numeric string.
//
// Parameters:
//   - s: The numeric string to format.
//
// Returns:
//   - string: The formatted string with comma separators.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix = "-"
		s = s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)

	firstGroupLen := n % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}
	builder.WriteString(s[:firstGroupLen])
	for i := firstGroupLen; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}
