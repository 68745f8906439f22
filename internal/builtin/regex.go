package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/coregx/coregex"
	"github.com/spf13/pflag"
)

// Match keeps the records matching a regular expression.
type Match struct{}

func (*Match) Name() string    { return "match" }
func (*Match) Summary() string { return "Output lines matching a regular expression" }
func (*Match) Generator() bool { return false }

func (m *Match) Run(ctx context.Context, streams IO, args []string) error {
	re, _, err := compileRegexArgs(m.Name(), streams, args, 1)
	if err != nil || re == nil {
		return err
	}

	return mapRecords(streams, func(rec []byte) ([]byte, bool) {
		return rec, re.MatchString(string(rec))
	})
}

// Replace substitutes every regex match within each record.
type Replace struct{}

func (*Replace) Name() string    { return "replace" }
func (*Replace) Summary() string { return "Replace regular expression matches in each line" }
func (*Replace) Generator() bool { return false }

func (r *Replace) Run(ctx context.Context, streams IO, args []string) error {
	re, rest, err := compileRegexArgs(r.Name(), streams, args, 2)
	if err != nil || re == nil {
		return err
	}
	repl := rest[1]

	return mapRecords(streams, func(rec []byte) ([]byte, bool) {
		return []byte(re.ReplaceAllString(string(rec), repl)), true
	})
}

// compileRegexArgs handles the shared flag surface of the regex commands.
// A nil regexp with a nil error means --help was requested.
func compileRegexArgs(name string, streams IO, args []string, positional int) (*coregex.Regexp, []string, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	ignoreCase := fs.BoolP("ignore-case", "i", false, "case-insensitive matching")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	rest := fs.Args()
	if len(rest) != positional {
		return nil, nil, fmt.Errorf("%s: expected %d arguments, got %d", name, positional, len(rest))
	}

	pattern := rest[0]
	if *ignoreCase {
		pattern = "(?i)" + pattern
	}
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: invalid regular expression: %w", name, err)
	}
	return re, rest, nil
}
