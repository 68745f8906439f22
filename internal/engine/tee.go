package engine

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/rewtool/rew/internal/record"
)

// queueDepth is the per-consumer record queue bound B. The tee pauses
// reading stdin while any consumer's queue is full, which bounds memory at
// the cost of coupling consumer speeds.
const queueDepth = 1

// teeBranch is one fan-out target of the tee. For a child pipeline the
// branch owns the child's stdin and a forwarder goroutine drains the queue
// into it; for the identity expression the column reads the queue directly.
type teeBranch struct {
	ch    chan []byte
	stdin io.WriteCloser // nil for the identity splice
	sep   byte
	dead  bool // stdin rejected a write; further records are dropped
}

func newTeeBranch(sep byte) *teeBranch {
	return &teeBranch{ch: make(chan []byte, queueDepth), sep: sep}
}

// forward writes queued records into the child's stdin, each as a single
// write of the record bytes plus the delimiter. A consumer that closes its
// stdin early turns the remaining writes into no-ops without affecting the
// other branches. The child's stdin is closed when the queue is closed.
func (b *teeBranch) forward() {
	defer b.stdin.Close()

	var buf []byte
	for rec := range b.ch {
		if b.dead {
			continue
		}
		buf = append(buf[:0], rec...)
		buf = append(buf, b.sep)
		if _, err := b.stdin.Write(buf); err != nil {
			b.dead = true
		}
	}
}

// tee is the single reader of the process's stdin. It hands every record to
// every branch in template order, so all consumers observe the same record
// sequence.
type tee struct {
	r        *record.Reader
	branches []*teeBranch
	log      *zap.Logger
	errc     chan error
}

func newTee(r io.Reader, cfg record.Config, branches []*teeBranch, log *zap.Logger) *tee {
	return &tee{
		r:        record.NewReader(r, cfg),
		branches: branches,
		log:      log,
		errc:     make(chan error, 1),
	}
}

// run pumps records until stdin is exhausted or stop is closed. On exit the
// branch queues are closed in template order, which cascades into closing
// every consumer's stdin.
func (t *tee) run(stop <-chan struct{}) {
	defer func() {
		for _, b := range t.branches {
			close(b.ch)
		}
		t.log.Debug("tee finished")
	}()

	for {
		rec, err := t.r.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.errc <- err
			return
		}

		// The copy is shared read-only by all branches.
		cp := append([]byte(nil), rec...)
		for _, b := range t.branches {
			select {
			case b.ch <- cp:
			case <-stop:
				return
			}
		}
	}
}

// err returns the stdin read error, if any, once run has finished.
func (t *tee) err() error {
	select {
	case err := <-t.errc:
		return err
	default:
		return nil
	}
}
