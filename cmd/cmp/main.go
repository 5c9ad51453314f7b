// Command cmp runs a constant-velocity semblance scan over the CMP gathers
// of an SU file and writes three diagnostic gathers: the best velocity per
// sample, its coherence, and the stacked amplitude at that velocity.
//
// Usage:
//
//	cmp [flags] C0 C1 NC APH TAU INPUT CDP0 CDP1
//
// C0 and C1 bound the trial velocities (C1 excluded), NC is the number of
// trial velocities, APH the maximum half-offset, TAU the semblance window
// half-width in seconds, and CDP0..CDP1 the inclusive CDP range.
//
// Examples:
//
//	cmp 1500 4500 120 2000 0.016 line.su 100 300
//	cmp --workers 8 --interp hermite --out-dir scan 1500 4500 120 2000 0.016 line.su 100 300
//	cmp --picks-db picks.db 1500 4500 120 2000 0.016 line.su 100 300
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

var errUsage = errors.New("wrong number of arguments")

const usageLine = "Usage: cmp C0 C1 NC APH TAU INPUT CDP0 CDP1"

// execute runs the command and maps its outcome to an exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		_, _ = fmt.Fprintln(stderr, usageLine)
		return 1
	case errors.Is(err, errNothingToProcess):
		_, _ = fmt.Fprintln(stderr, "nothing to process")
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}
