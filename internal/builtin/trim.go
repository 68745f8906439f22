package builtin

import (
	"bytes"
	"context"
	"errors"
	"unicode"

	"github.com/spf13/pflag"
)

// Trim strips whitespace from each record. Both ends are trimmed unless one
// of the flags narrows it down.
type Trim struct{}

func (*Trim) Name() string    { return "trim" }
func (*Trim) Summary() string { return "Trim whitespace from each line" }
func (*Trim) Generator() bool { return false }

func (t *Trim) Run(ctx context.Context, streams IO, args []string) error {
	fs := pflag.NewFlagSet(t.Name(), pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	start := fs.BoolP("start", "s", false, "trim the beginning")
	end := fs.BoolP("end", "e", false, "trim the end")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	return mapRecords(streams, func(rec []byte) ([]byte, bool) {
		switch {
		case *start && !*end:
			return bytes.TrimLeftFunc(rec, unicode.IsSpace), true
		case *end && !*start:
			return bytes.TrimRightFunc(rec, unicode.IsSpace), true
		default:
			return bytes.TrimSpace(rec), true
		}
	})
}
