package compile

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/flarebyte/seshat-compendium/internal/aggregate"
)

const (
	exitCodeExecErr   = 1
	exitCodeUsage     = 2
	exitCodeNotFound  = 3
	exitCodeEmpty     = 4
	exitCodeCancelled = 5
)

type runExitError struct {
	code int
	msg  string
	err  error
}

func (e runExitError) Error() string { return e.msg }
func (e runExitError) ExitCode() int { return e.code }
func (e runExitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return runExitError{code: exitCodeUsage, msg: err.Error(), err: err}
}

// evaluateRunExit maps a pipeline failure onto a process exit code.
func evaluateRunExit(err error) error {
	if err == nil {
		return nil
	}
	var already runExitError
	if errors.As(err, &already) {
		return err
	}
	code := exitCodeExecErr
	switch {
	case errors.Is(err, aggregate.ErrCancelled):
		code = exitCodeCancelled
	case errors.Is(err, aggregate.ErrNotFound):
		code = exitCodeNotFound
	case errors.Is(err, aggregate.ErrEmptyResult):
		code = exitCodeEmpty
	}
	return runExitError{code: code, msg: err.Error(), err: err}
}

func flagError(_ *cobra.Command, err error) error { return usageError(err) }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
