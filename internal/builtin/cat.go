package builtin

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/pflag"

	"github.com/rewtool/rew/internal/record"
)

// Cat copies all input to output. Mostly useful for benchmarking raw IO
// throughput and as the identity stage of compositions.
type Cat struct{}

func (*Cat) Name() string    { return "cat" }
func (*Cat) Summary() string { return "Copy all input to output" }
func (*Cat) Generator() bool { return false }

func (c *Cat) Run(ctx context.Context, streams IO, args []string) error {
	fs := pflag.NewFlagSet(c.Name(), pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	lines := fs.BoolP("lines", "l", false, "process data as records, normalizing CR+LF")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if !*lines {
		buf := make([]byte, streams.Config.BufSize)
		_, err := io.CopyBuffer(streams.Out, streams.In, buf)
		return err
	}

	r := record.NewReader(streams.In, streams.Config)
	w := record.NewWriter(streams.Out, streams.Config)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return w.Flush()
		}
		if err != nil {
			return err
		}
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
	}
}
