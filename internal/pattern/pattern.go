// Package pattern implements the composition pattern language of the x
// command: a template of literal text and {…} expressions, where each
// expression is a pipeline of commands or a raw shell script.
package pattern

import (
	"fmt"
	"strings"
)

const (
	exprStart = '{'
	exprEnd   = '}'
	pipe      = '|'

	noStdinMarker  = ':'
	rawShellMarker = '#'
	externMarker   = '!'

	singleQuote = '\''
	doubleQuote = '"'
)

// DefaultEscape is the escape character used unless overridden by --escape.
const DefaultEscape = '\\'

// Template is the parsed, immutable representation of a pattern: an ordered
// sequence of literal and expression segments.
type Template struct {
	Segments []Segment
	Source   string
}

// Segment is either a Literal or an *Expr.
type Segment interface {
	fmt.Stringer
	segment()
}

// Literal is raw pattern text with escape sequences already resolved. It
// contributes the same bytes to every output row.
type Literal string

func (Literal) segment() {}

func (l Literal) String() string { return string(l) }

// Expr is one {…} occurrence. It evaluates to a column of output records.
type Expr struct {
	// NoStdin records the user's ':' marker: the pipeline does not consume
	// the shared stdin stream.
	NoStdin bool

	// RawShell is set for '#'-marked expressions; Shell then holds the
	// verbatim script and Pipeline is empty.
	RawShell bool
	Shell    string

	// Pipeline is the '|'-separated command chain. An empty pipeline is the
	// identity expression {}.
	Pipeline []Command

	// Raw is the original expression text, including the braces.
	Raw string

	// Pos and Off locate the opening brace in the pattern, as rune index
	// and byte offset.
	Pos int
	Off int
}

func (*Expr) segment() {}

func (e *Expr) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	if e.NoStdin {
		sb.WriteByte(':')
	}
	if e.RawShell {
		sb.WriteByte('#')
		sb.WriteByte('`')
		sb.WriteString(e.Shell)
		sb.WriteByte('`')
	} else {
		for i, cmd := range e.Pipeline {
			if i > 0 {
				sb.WriteByte('|')
			}
			sb.WriteString(cmd.String())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// Command is a single pipeline stage: a built-in by default, an external
// program when marked with '!'.
type Command struct {
	Name     string
	Args     []string
	External bool
}

func (c Command) String() string {
	var sb strings.Builder
	if c.External {
		sb.WriteByte('!')
	}
	sb.WriteByte('`')
	sb.WriteString(c.Name)
	sb.WriteByte('`')
	for _, arg := range c.Args {
		sb.WriteString(" `")
		sb.WriteString(arg)
		sb.WriteByte('`')
	}
	return sb.String()
}

// String renders the template in a normalized form, mainly for tests and
// diagnostics.
func (t Template) String() string {
	var sb strings.Builder
	for _, seg := range t.Segments {
		sb.WriteString(seg.String())
	}
	return sb.String()
}

// Exprs returns the expression segments in template order.
func (t Template) Exprs() []*Expr {
	var exprs []*Expr
	for _, seg := range t.Segments {
		if e, ok := seg.(*Expr); ok {
			exprs = append(exprs, e)
		}
	}
	return exprs
}
