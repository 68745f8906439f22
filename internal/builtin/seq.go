package builtin

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rewtool/rew/internal/record"
)

// Seq prints a sequence of numbers as records. Without a last value the
// sequence is unbounded; it is then terminated by the consumer closing the
// pipe. Accepts either "FIRST LAST" or the "FIRST..LAST" range form.
type Seq struct{}

func (*Seq) Name() string    { return "seq" }
func (*Seq) Summary() string { return "Print sequence of numbers as lines" }
func (*Seq) Generator() bool { return true }

func (s *Seq) Run(ctx context.Context, streams IO, args []string) error {
	fs := pflag.NewFlagSet(s.Name(), pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	step := fs.Int64P("step", "s", 0, "increment between numbers (default 1, or -1 for a decreasing sequence)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	first, last, err := parseRange(fs.Args())
	if err != nil {
		return fmt.Errorf("seq: %w", err)
	}

	w := record.NewWriter(streams.Out, streams.Config)
	var buf []byte
	write := func(value int64) error {
		buf = strconv.AppendInt(buf[:0], value, 10)
		return w.WriteRecord(buf)
	}

	value := first
	switch {
	case last == nil:
		inc := *step
		if inc == 0 {
			inc = 1
		}
		for {
			if err := write(value); err != nil {
				return err
			}
			next := value + inc
			if (inc > 0 && next < value) || (inc < 0 && next > value) {
				return errors.New("seq: number sequence overflowed integer limit")
			}
			value = next
		}
	case first < *last:
		inc := *step
		if inc == 0 {
			inc = 1
		}
		for value <= *last {
			if err := write(value); err != nil {
				return err
			}
			value += inc
		}
	case first > *last:
		inc := *step
		if inc == 0 {
			inc = -1
		}
		for value >= *last {
			if err := write(value); err != nil {
				return err
			}
			value += inc
		}
	default:
		if err := write(value); err != nil {
			return err
		}
	}

	return w.Flush()
}

func parseRange(args []string) (first int64, last *int64, err error) {
	first = 1

	parse := func(s string) (int64, error) {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return v, nil
	}

	switch len(args) {
	case 0:
		return first, nil, nil
	case 1:
		if lo, hi, ok := strings.Cut(args[0], ".."); ok {
			if first, err = parse(lo); err != nil {
				return 0, nil, err
			}
			v, err := parse(hi)
			if err != nil {
				return 0, nil, err
			}
			return first, &v, nil
		}
		if first, err = parse(args[0]); err != nil {
			return 0, nil, err
		}
		return first, nil, nil
	case 2:
		if first, err = parse(args[0]); err != nil {
			return 0, nil, err
		}
		v, err := parse(args[1])
		if err != nil {
			return 0, nil, err
		}
		return first, &v, nil
	default:
		return 0, nil, fmt.Errorf("expected at most two arguments, got %d", len(args))
	}
}
