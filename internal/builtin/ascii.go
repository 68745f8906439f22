package builtin

import (
	"context"
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Ascii converts records to ASCII. Accented characters are decomposed and
// their combining marks dropped; anything still outside ASCII becomes '?',
// or is deleted with --delete.
type Ascii struct{}

func (*Ascii) Name() string    { return "ascii" }
func (*Ascii) Summary() string { return "Convert characters to ASCII" }
func (*Ascii) Generator() bool { return false }

func (a *Ascii) Run(ctx context.Context, streams IO, args []string) error {
	fs := pflag.NewFlagSet(a.Name(), pflag.ContinueOnError)
	fs.SetOutput(streams.Err)
	del := fs.BoolP("delete", "d", false, "delete non-ASCII characters instead of converting them")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out := make([]byte, 0, streams.Config.BufSize)

	return mapRecords(streams, func(rec []byte) ([]byte, bool) {
		if isASCII(rec) {
			// ASCII check is cheap, reuse the input buffer for throughput.
			return rec, true
		}

		converted := rec
		if !*del {
			if stripped, _, err := transform.Bytes(stripMarks, rec); err == nil {
				converted = stripped
			}
		}

		out = out[:0]
		for _, ch := range string(converted) {
			switch {
			case ch < utf8.RuneSelf:
				out = append(out, byte(ch))
			case *del:
			default:
				out = append(out, '?')
			}
		}
		return out, true
	})
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
