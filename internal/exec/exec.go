// Package exec names the interfaces a downstream collaborator implements
// to actually run the programs this module parses. Nothing in this
// repository implements them; they exist so the parser's output has a
// documented, stable shape to be handed to without this module reaching
// into process control, job tables, or variable scoping itself.
package exec

import (
	"context"

	"go.yosh.dev/yosh/pkg"
)

// ExitStatus is a command's exit code, 0-255 per POSIX.
type ExitStatus int

const (
	ExitSuccess ExitStatus = 0
	ExitFailure ExitStatus = 1
)

// Field is one word after expansion: its final value, plus the Location it
// originated from, kept for error messages ("bad option at line 3").
type Field struct {
	Value  string
	Origin syntax.Location
}

// Executor runs a parsed pipeline and reports how it exited. Implementors
// own expansion, redirection, job control, and trap delivery; this module
// only ever hands them an *syntax.Pipeline[syntax.HereDoc].
type Executor interface {
	Execute(ctx context.Context, pipeline *syntax.Pipeline[syntax.HereDoc]) (ExitStatus, error)
}

// VariableStore is the shell variable environment an Executor consults
// during expansion.
type VariableStore interface {
	Get(name string) (value string, exported bool, ok bool)
	Set(name, value string, export bool)
	Unset(name string)
}

// JobTable tracks asynchronous (background, '&'-terminated) jobs.
type JobTable interface {
	Add(pipeline *syntax.Pipeline[syntax.HereDoc]) (jobID int)
	Wait(jobID int) (ExitStatus, error)
}
