package config

import (
	"flag"
	"fmt"

	"github.com/agbru/fibfixed/internal/ui"
)

// setCustomUsage configures the flag set with a themed usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := ui.GetCurrentTheme()
		out := fs.Output()

		fmt.Fprintf(out, "\n%sfibfixed%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Fixed-width Fibonacci calculator (uint32 arithmetic).\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %s%-22s%s %s", t.Primary, flagSig, t.Reset, usage)
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " (default %s)", f.DefValue)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}
