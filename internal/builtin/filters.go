package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rewtool/rew/internal/record"
)

// First outputs the first N records.
type First struct{}

func (*First) Name() string    { return "first" }
func (*First) Summary() string { return "Output first N input lines" }
func (*First) Generator() bool { return false }

func (f *First) Run(ctx context.Context, streams IO, args []string) error {
	count, err := countArg(f.Name(), args, 1)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}

	r := record.NewReader(streams.In, streams.Config)
	w := record.NewWriter(streams.Out, streams.Config)
	for count > 0 {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := w.WriteRecord(rec); err != nil {
			return err
		}
		count--
	}
	return w.Flush()
}

// Last outputs the last N records, holding at most N of them in memory.
type Last struct{}

func (*Last) Name() string    { return "last" }
func (*Last) Summary() string { return "Output last N input lines" }
func (*Last) Generator() bool { return false }

func (l *Last) Run(ctx context.Context, streams IO, args []string) error {
	count, err := countArg(l.Name(), args, 1)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	n := int(count)

	r := record.NewReader(streams.In, streams.Config)
	ring := make([][]byte, n)
	total := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		slot := &ring[total%n]
		*slot = append((*slot)[:0], rec...)
		total++
	}

	w := record.NewWriter(streams.Out, streams.Config)
	start := 0
	if total > n {
		start = total - n
	}
	for i := start; i < total; i++ {
		if err := w.WriteRecord(ring[i%n]); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Skip drops the first N records and streams the rest through unchanged.
type Skip struct{}

func (*Skip) Name() string    { return "skip" }
func (*Skip) Summary() string { return "Skip first N input lines, output the rest" }
func (*Skip) Generator() bool { return false }

func (s *Skip) Run(ctx context.Context, streams IO, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("skip: expected exactly one argument, got %d", len(args))
	}
	count, err := strconv.ParseUint(args[0], 10, 63)
	if err != nil {
		return fmt.Errorf("skip: invalid count %q: %w", args[0], err)
	}

	if count == 0 {
		buf := make([]byte, streams.Config.BufSize)
		_, err := io.CopyBuffer(streams.Out, streams.In, buf)
		return err
	}

	r := record.NewReader(streams.In, streams.Config)
	for count > 0 {
		if _, err := r.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		count--
	}

	// Past the boundary the remainder is copied verbatim.
	_, err = io.Copy(streams.Out, r.Buffered())
	return err
}

func countArg(name string, args []string, def uint64) (uint64, error) {
	switch len(args) {
	case 0:
		return def, nil
	case 1:
		count, err := strconv.ParseUint(args[0], 10, 63)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid count %q: %w", name, args[0], err)
		}
		return count, nil
	default:
		return 0, fmt.Errorf("%s: expected at most one argument, got %d", name, len(args))
	}
}
