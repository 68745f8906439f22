package record

import (
	"bufio"
	"errors"
	"io"
)

// ErrOverflow is returned when a record does not fit into the configured
// buffer. Commands that require whole records treat this as fatal.
var ErrOverflow = errors.New("record exceeds the configured buffer size")

// Reader reads delimiter-framed records from an underlying stream.
type Reader struct {
	br  *bufio.Reader
	sep byte
}

// NewReader wraps r with a record reader using the configured delimiter and
// buffer size.
func NewReader(r io.Reader, c Config) *Reader {
	size := c.BufSize
	if size < MinBufSize {
		size = MinBufSize
	}
	return &Reader{br: bufio.NewReaderSize(r, size), sep: c.Sep}
}

// Read returns the next record with its delimiter (and a CR before an LF
// delimiter) stripped. The returned slice is only valid until the next call.
// It returns io.EOF after the last record and ErrOverflow when a record is
// longer than the buffer.
func (r *Reader) Read() ([]byte, error) {
	rec, err := r.br.ReadSlice(r.sep)
	switch {
	case err == nil:
		return Trim(rec, r.sep), nil
	case errors.Is(err, bufio.ErrBufferFull):
		return nil, ErrOverflow
	case errors.Is(err, io.EOF):
		if len(rec) == 0 {
			return nil, io.EOF
		}
		// Final record without a trailing delimiter.
		return rec, nil
	default:
		return nil, err
	}
}

// Buffered exposes the underlying buffered reader so block-oriented
// commands can bypass framing after a record boundary has been found.
func (r *Reader) Buffered() *bufio.Reader {
	return r.br
}
