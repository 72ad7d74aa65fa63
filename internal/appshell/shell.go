// Package appshell adapts an app entry point to a process: it wires
// SIGINT/SIGTERM to context cancellation and exits with the run's code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// ExitInterrupted is the exit code of a run stopped by a signal.
const ExitInterrupted = 130

// Main runs run with the process arguments and streams, then exits.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := Code(ctx, run(ctx, os.Args[1:], os.Stdout, os.Stderr))

	stop()
	os.Exit(code)
}

// Code normalizes the exit code of a run under ctx: a cancelled run that
// otherwise reported success exits ExitInterrupted.
func Code(ctx context.Context, code int) int {
	if ctx.Err() != nil && code == 0 {
		return ExitInterrupted
	}
	return code
}
