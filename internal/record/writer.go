package record

import (
	"bufio"
	"io"
)

// Writer writes delimiter-framed records to an underlying stream, honoring
// the configured buffering mode.
type Writer struct {
	bw   *bufio.Writer
	sep  byte
	line bool
}

// NewWriter wraps w with a record writer.
func NewWriter(w io.Writer, c Config) *Writer {
	size := c.BufSize
	if size < MinBufSize {
		size = MinBufSize
	}
	return &Writer{
		bw:   bufio.NewWriterSize(w, size),
		sep:  c.Sep,
		line: c.BufMode == BufLine,
	}
}

// WriteRecord writes rec followed by exactly one delimiter. In line mode the
// buffer is flushed afterwards.
func (w *Writer) WriteRecord(rec []byte) error {
	if _, err := w.bw.Write(rec); err != nil {
		return err
	}
	if err := w.bw.WriteByte(w.sep); err != nil {
		return err
	}
	if w.line {
		return w.bw.Flush()
	}
	return nil
}

// Write passes a raw block through, without framing.
func (w *Writer) Write(p []byte) (int, error) {
	return w.bw.Write(p)
}

// Flush writes out any buffered data.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
