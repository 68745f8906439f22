package engine

import (
	"errors"
	"io"
	"os"

	"github.com/rewtool/rew/internal/record"
)

// column is the per-segment record source the row assembler pulls from.
type column interface {
	// next returns the column's next record. io.EOF marks the column
	// exhausted; the first exhausted column terminates the whole run.
	next() ([]byte, error)
}

// literalColumn yields the same bytes on every tick and never reports EOF,
// so it can never be the cause of termination.
type literalColumn struct {
	text []byte
}

func (c *literalColumn) next() ([]byte, error) {
	return c.text, nil
}

// spliceColumn adapts a tee branch directly: the identity expression {}
// forwards stdin records without any child process in between.
type spliceColumn struct {
	branch *teeBranch
}

func (c *spliceColumn) next() ([]byte, error) {
	rec, ok := <-c.branch.ch
	if !ok {
		return nil, io.EOF
	}
	return rec, nil
}

// streamColumn pulls records from a child pipeline's stdout. A reader
// goroutine fills the bounded queue; err is set before the queue is closed.
type streamColumn struct {
	ch  chan []byte
	err error
}

func newStreamColumn() *streamColumn {
	return &streamColumn{ch: make(chan []byte, queueDepth)}
}

func (c *streamColumn) next() ([]byte, error) {
	rec, ok := <-c.ch
	if !ok {
		if c.err != nil {
			return nil, c.err
		}
		return nil, io.EOF
	}
	return rec, nil
}

// read drains the child's stdout until EOF or stop. The pipe being closed
// under it during shutdown counts as end-of-stream, not as an error.
func (c *streamColumn) read(stop <-chan struct{}, r io.Reader, cfg record.Config) {
	defer close(c.ch)

	rr := record.NewReader(r, cfg)
	for {
		rec, err := rr.Read()
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				c.err = err
			}
			return
		}
		cp := append([]byte(nil), rec...)
		select {
		case c.ch <- cp:
		case <-stop:
			return
		}
	}
}
