package pattern

import (
	"fmt"
	"strings"
)

// Kind classifies pattern syntax errors.
type Kind int

const (
	// KindUnterminatedExpr is an expression with no closing brace.
	KindUnterminatedExpr Kind = iota
	// KindUnexpectedExprStart is a '{' inside an expression.
	KindUnexpectedExprStart
	// KindUnmatchedExprEnd is a '}' without a preceding '{'.
	KindUnmatchedExprEnd
	// KindEmptyStage is a pipeline stage missing around a '|'.
	KindEmptyStage
	// KindUnclosedQuote is a quoted argument with no closing quote.
	KindUnclosedQuote
	// KindEmptyShellCommand is a '#' expression whose script is blank.
	KindEmptyShellCommand
	// KindBadEscape is an escape character at the end of the pattern.
	KindBadEscape
	// KindShellNotConfigured is a '#' expression with no usable shell.
	KindShellNotConfigured
)

func (k Kind) String() string {
	switch k {
	case KindUnterminatedExpr:
		return "UnterminatedExpr"
	case KindUnexpectedExprStart:
		return "UnexpectedExprStart"
	case KindUnmatchedExprEnd:
		return "UnmatchedExprEnd"
	case KindEmptyStage:
		return "EmptyStage"
	case KindUnclosedQuote:
		return "UnclosedQuote"
	case KindEmptyShellCommand:
		return "EmptyShellCommand"
	case KindBadEscape:
		return "BadEscape"
	case KindShellNotConfigured:
		return "ShellNotConfigured"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a pattern syntax error with the position it occurred at.
type Error struct {
	Input string
	Kind  Kind
	Pos   int    // rune index into Input
	Off   int    // byte offset into Input
	Quote rune   // set for KindUnclosedQuote
	Shell string // set for KindShellNotConfigured
}

// Message returns the human-readable description without position context.
func (e *Error) Message() string {
	switch e.Kind {
	case KindUnterminatedExpr:
		return "missing closing }"
	case KindUnexpectedExprStart:
		return "the previous { was not closed"
	case KindUnmatchedExprEnd:
		return "missing opening {"
	case KindEmptyStage:
		return "missing command around |"
	case KindUnclosedQuote:
		return fmt.Sprintf("missing closing %c", e.Quote)
	case KindEmptyShellCommand:
		return "empty shell command"
	case KindBadEscape:
		return "escape character at the end of the pattern"
	case KindShellNotConfigured:
		if e.Shell == "" {
			return "no shell is configured"
		}
		return fmt.Sprintf("shell %q is not available", e.Shell)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("pattern syntax error %s at offset %d: %s", e.Kind, e.Off, e.Message())
}

// Explain renders the error with the pattern and a caret under the
// offending position, for the CLI.
func (e *Error) Explain() string {
	padding := strings.Repeat(" ", e.Pos)
	return fmt.Sprintf(
		"pattern syntax error (%s) at position %d\n\n%s\n%s^\n%s%s\n",
		e.Kind, e.Pos, e.Input, padding, padding, e.Message(),
	)
}
