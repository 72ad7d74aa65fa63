// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"argpred/internal/cli"
	"argpred/internal/version"
	"argpred/internal/writers"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1 // model, FASTA or inference failure
	ExitUsage       = 2
	ExitWrite       = 3
	ExitInterrupted = 130
)

// exitError carries the exit code for err. Logged errors were already
// reported through the run's logger.
type exitError struct {
	code   int
	err    error
	logged bool
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: ExitUsage, err: err} }

// NewCommand builds the root command. Results go to stdout, diagnostics to
// stderr.
func NewCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "argpred [flags] <fasta>",
		Short: "Classify DNA sequences as antibiotic resistance genes",
		Long: `argpred: antibiotic resistance gene prediction

Loads a pretrained binary classifier, one-hot encodes every sequence of the
FASTA file (plain, gzip, or '-' for stdin) and prints the probability that
each one is an ARG. Settings come from flags, ARGPRED_* environment
variables, or a --config file, in that order of precedence.`,
		Example: `  argpred -m model.json.gz genes.fasta
  argpred -m model.lzw --threshold 0.8 -o tsv genes.fa.gz > calls.tsv
  zcat reads.fa.gz | ARGPRED_MODEL=model.json argpred -o jsonl -`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if cmd.Flags().NFlag() == 0 {
					return cmd.Help()
				}
				return usageError(errors.New("missing FASTA file argument"))
			}
			return run(cmd.Context(), cmd.Flags(), args[0], stdout, stderr)
		},
	}
	cmd.SetVersionTemplate("argpred version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })
	cli.Register(cmd.Flags())
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd
}

// RunContext executes argv and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	cmd := NewCommand(outw, stderr)
	if argv == nil {
		argv = []string{}
	}
	cmd.SetArgs(argv)
	code := exitCode(cmd, cmd.ExecuteContext(parent), stderr)

	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return code
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return ExitWrite
	}
	return code
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func exitCode(cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if !errors.As(err, &ee) {
		ee = &exitError{code: ExitFailure, err: err}
		if errors.Is(err, context.Canceled) {
			ee.code = ExitInterrupted
		}
	}
	if !ee.logged {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", ee.err)
		if ee.code == ExitUsage {
			_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.CommandPath())
		}
	}
	return ee.code
}
