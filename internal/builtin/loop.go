package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Loop repeatedly outputs all captured input. Without a count it repeats
// forever and is terminated by the consumer closing the pipe.
type Loop struct{}

func (*Loop) Name() string    { return "loop" }
func (*Loop) Summary() string { return "Repeatedly output all captured input" }
func (*Loop) Generator() bool { return false }

func (l *Loop) Run(ctx context.Context, streams IO, args []string) error {
	var count uint64
	bounded := false
	switch len(args) {
	case 0:
	case 1:
		var err error
		count, err = strconv.ParseUint(args[0], 10, 63)
		if err != nil {
			return fmt.Errorf("loop: invalid count %q: %w", args[0], err)
		}
		bounded = true
	default:
		return fmt.Errorf("loop: expected at most one argument, got %d", len(args))
	}

	if bounded && count == 0 {
		return nil
	}

	if bounded && count == 1 {
		// A single iteration does not need the input buffered.
		buf := make([]byte, streams.Config.BufSize)
		_, err := io.CopyBuffer(streams.Out, streams.In, buf)
		return err
	}

	// Stream the first iteration while capturing the input.
	captured := make([]byte, 0, streams.Config.BufSize)
	buf := make([]byte, streams.Config.BufSize)
	for {
		n, err := streams.In.Read(buf)
		if n > 0 {
			if _, werr := streams.Out.Write(buf[:n]); werr != nil {
				return werr
			}
			captured = append(captured, buf[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	if bounded {
		for ; count > 1; count-- {
			if _, err := streams.Out.Write(captured); err != nil {
				return err
			}
		}
		return nil
	}

	if len(captured) == 0 {
		return nil
	}
	for {
		if _, err := streams.Out.Write(captured); err != nil {
			return err
		}
	}
}
