package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/explaintext/pkg/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalid     = 2 // the input, flags or config were rejected
	ExitInterrupted = 130
)

// ExitCode maps the error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case stderrors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.IsInvalid(err), errors.Is(err, errors.ErrCodeFileNotFound):
		return ExitInvalid
	}
	return ExitFailure
}

// ReportError prints err to the status stream. Interruptions are not
// reported; the shell already shows them.
func ReportError(err error) {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return
	}
	printError("%v", err)
}
