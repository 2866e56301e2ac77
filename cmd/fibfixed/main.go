// Command fibfixed prints Fibonacci numbers computed in fixed-width uint32
// arithmetic. With no arguments it prints F(10).
//
// Usage:
//
//	fibfixed [-n 10] [-mode wrap|checked|saturate|all] [-json] [-d]
//	fibfixed -server [-port 8080] [-cache-size 128] [-max-n 0]
package main

import (
	"context"
	"io"
	"os"

	"github.com/agbru/fibfixed/internal/app"
	apperrors "github.com/agbru/fibfixed/internal/errors"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) > 1 && app.HasVersionFlag(args[1:]) {
		app.PrintVersion(out)
		return apperrors.ExitSuccess
	}

	application, err := app.New(args, errOut)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		return apperrors.ExitErrorConfig
	}
	return application.Run(ctx, out)
}
