package builtin

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Split turns every occurrence of a separator byte into a record boundary.
type Split struct{}

func (*Split) Name() string    { return "split" }
func (*Split) Summary() string { return "Split input into lines using a separator" }
func (*Split) Generator() bool { return false }

func (s *Split) Run(ctx context.Context, streams IO, args []string) error {
	fs := pflag.NewFlagSet(s.Name(), pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	ignoreTrailing := fs.BoolP("ignore-trailing", "t", false, "ignore trailing separator at the end of input")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return fmt.Errorf("split: expected exactly one separator argument")
	}
	sep, err := parseSeparator(rest[0])
	if err != nil {
		return fmt.Errorf("split: %w", err)
	}

	outSep := streams.Config.Sep
	buf := make([]byte, streams.Config.BufSize)
	endingSepWritten := false
	startNextSeparated := false

	for {
		n, err := streams.In.Read(buf)
		if n > 0 {
			block := buf[:n]

			if startNextSeparated {
				if _, err := streams.Out.Write([]byte{outSep}); err != nil {
					return err
				}
				endingSepWritten = true
			}

			// Hold back a trailing output separator until more data proves
			// it is not the end of the input.
			if block[len(block)-1] == outSep {
				block = block[:len(block)-1]
				startNextSeparated = true
			} else {
				startNextSeparated = false
			}

			if len(block) > 0 {
				for i, c := range block {
					if c == sep {
						block[i] = outSep
					}
				}
				if _, err := streams.Out.Write(block); err != nil {
					return err
				}
				endingSepWritten = block[len(block)-1] == outSep
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	if !endingSepWritten || !*ignoreTrailing {
		if _, err := streams.Out.Write([]byte{outSep}); err != nil {
			return err
		}
	}
	return nil
}

func parseSeparator(s string) (byte, error) {
	if len(s) != 1 {
		if len([]rune(s)) == 1 {
			return 0, errors.New("multi-byte characters are not supported")
		}
		return 0, errors.New("value must be a single character")
	}
	return s[0], nil
}
