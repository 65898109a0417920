// internal/rugateapp/app.go
// Package rugateapp is the rugate command line: it wires configuration,
// logging, the sweep pipeline, the writers and the figure renderer, and maps
// failures to exit codes.
package rugateapp

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"rugate/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitFailure  = 3
	ExitCanceled = 130
)

// usageError marks bad flags, configuration or parameters.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, a ...any) error { return usageError{fmt.Errorf(format, a...)} }

func asUsage(err error) error {
	if err == nil {
		return nil
	}
	return usageError{err}
}

// RunContext executes the command line in argv and returns the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	if argv == nil {
		argv = []string{}
	}
	root := newRootCommand(outw, stderr, stdout)
	root.SetArgs(argv)
	err := root.ExecuteContext(parent)

	if ferr := outw.Flush(); ferr != nil && err == nil {
		err = errors.Wrap(ferr, "write output")
	}
	return exitCode(parent, err, stderr)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func exitCode(ctx context.Context, err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return ExitOK
	case writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		return ExitCanceled
	}

	_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) {
		_, _ = fmt.Fprintln(stderr, "Run 'rugate --help' for usage.")
		return ExitUsage
	}
	return ExitFailure
}
