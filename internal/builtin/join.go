package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/rewtool/rew/internal/record"
)

// Join merges all input records into one, separated by a string.
type Join struct{}

func (*Join) Name() string    { return "join" }
func (*Join) Summary() string { return "Join input lines using a separator" }
func (*Join) Generator() bool { return false }

func (j *Join) Run(ctx context.Context, streams IO, args []string) error {
	fs := pflag.NewFlagSet(j.Name(), pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	trailing := fs.BoolP("trailing", "t", false, "print trailing separator at the end")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("join: expected exactly one separator argument")
	}
	sep := []byte(rest[0])

	r := record.NewReader(streams.In, streams.Config)
	w := record.NewWriter(streams.Out, streams.Config)

	first := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if !first {
			if _, err := w.Write(sep); err != nil {
				return err
			}
		}
		first = false
		if _, err := w.Write(rec); err != nil {
			return err
		}
	}

	if *trailing {
		if _, err := w.Write(sep); err != nil {
			return err
		}
	}
	if _, err := w.Write([]byte{streams.Config.Sep}); err != nil {
		return err
	}
	return w.Flush()
}
