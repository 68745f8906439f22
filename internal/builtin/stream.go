package builtin

import (
	"context"

	"github.com/rewtool/rew/internal/record"
)

// Stream prints its arguments as records.
type Stream struct{}

func (*Stream) Name() string    { return "stream" }
func (*Stream) Summary() string { return "Print arguments as lines" }
func (*Stream) Generator() bool { return true }

func (s *Stream) Run(ctx context.Context, streams IO, args []string) error {
	w := record.NewWriter(streams.Out, streams.Config)
	for _, value := range args {
		if err := w.WriteRecord([]byte(value)); err != nil {
			return err
		}
	}
	return w.Flush()
}
