package builtin

import (
	"bytes"
	"context"
)

// Upper converts every record to uppercase.
type Upper struct{}

func (*Upper) Name() string    { return "upper" }
func (*Upper) Summary() string { return "Convert characters to uppercase" }
func (*Upper) Generator() bool { return false }

func (u *Upper) Run(ctx context.Context, streams IO, args []string) error {
	return mapRecords(streams, func(rec []byte) ([]byte, bool) {
		return bytes.ToUpper(rec), true
	})
}

// Lower converts every record to lowercase.
type Lower struct{}

func (*Lower) Name() string    { return "lower" }
func (*Lower) Summary() string { return "Convert characters to lowercase" }
func (*Lower) Generator() bool { return false }

func (l *Lower) Run(ctx context.Context, streams IO, args []string) error {
	return mapRecords(streams, func(rec []byte) ([]byte, bool) {
		return bytes.ToLower(rec), true
	})
}
