package builtin

import (
	"errors"
	"io"

	"github.com/rewtool/rew/internal/record"
)

// mapRecords streams records through fn. Returning keep=false drops the
// record. The slice passed to fn is only valid for the duration of the call.
func mapRecords(streams IO, fn func(rec []byte) (out []byte, keep bool)) error {
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
		out, keep := fn(rec)
		if !keep {
			continue
		}
		if err := w.WriteRecord(out); err != nil {
			return err
		}
	}
}
