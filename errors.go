package rew

import (
	"github.com/rewtool/rew/internal/pattern"
	"github.com/rewtool/rew/internal/spawn"
)

// Error types returned by Run, re-exported so library consumers can
// classify failures with errors.As without reaching into internal
// packages.
type (
	// ParseError is a pattern syntax error with the position it occurred
	// at. Its Explain method renders the pattern with a caret under the
	// offending position.
	ParseError = pattern.Error

	// ParseErrorKind classifies pattern syntax errors.
	ParseErrorKind = pattern.Kind

	// SpawnError reports a pipeline stage that could not be started.
	SpawnError = spawn.Error

	// ExitError carries a child's non-zero exit code. Its message is
	// intentionally empty; the child's own stderr already told the user
	// what went wrong.
	ExitError = spawn.ExitError
)

// Pattern syntax error kinds.
const (
	UnterminatedExpr    = pattern.KindUnterminatedExpr
	UnexpectedExprStart = pattern.KindUnexpectedExprStart
	UnmatchedExprEnd    = pattern.KindUnmatchedExprEnd
	EmptyStage          = pattern.KindEmptyStage
	UnclosedQuote       = pattern.KindUnclosedQuote
	EmptyShellCommand   = pattern.KindEmptyShellCommand
	BadEscape           = pattern.KindBadEscape
	ShellNotConfigured  = pattern.KindShellNotConfigured
)

// IsExitError reports whether err carries a child exit code and returns it.
func IsExitError(err error) (int, bool) {
	return spawn.IsExitError(err)
}
