// Package engine evaluates a composition template: it spawns one child
// pipeline per expression, fans stdin out to the consuming pipelines,
// joins the pipeline outputs line-by-line into rows, and supervises the
// shutdown of the whole process tree.
package engine

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/rewtool/rew/internal/builtin"
	"github.com/rewtool/rew/internal/pattern"
	"github.com/rewtool/rew/internal/record"
	"github.com/rewtool/rew/internal/spawn"
)

// shutdownGrace is how long children get to exit on their own after their
// pipes are closed, before they are killed.
const shutdownGrace = 5 * time.Second

// Engine runs one composition. All fields are read-only during Run.
type Engine struct {
	Template pattern.Template
	Registry *builtin.Registry
	Launcher *spawn.Launcher
	Config   record.Config
	Log      *zap.Logger

	// Stdin is only opened for reading when at least one expression
	// consumes it; otherwise it is left untouched.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// child is one running pipeline stage and the pipe ends the parent owns.
type child struct {
	spec   spawn.Spec
	cmd    *exec.Cmd
	stdin  io.WriteCloser // first consuming stage only
	stdout io.ReadCloser  // last stage only
}

// readerTask pairs a stream column with the child stdout it drains.
type readerTask struct {
	col *streamColumn
	out io.ReadCloser
}

// plan is the execution graph built from the template: children in
// spawn order, one column per segment, one tee branch per consumer.
type plan struct {
	children []*child
	columns  []column
	branches []*teeBranch
	readers  []readerTask
	tee      *tee
}

// Run executes the template until the first column is exhausted or an
// error occurs, then tears the process tree down. The returned error is
// nil on success, a *spawn.ExitError for a failed child, or the first
// engine error otherwise.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.checkShell(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p, err := e.build(ctx)
	if err != nil {
		// Abnormal startup: tear down whatever was already running.
		p.closeStdins()
		p.closeStdouts()
		p.reap(0, e.Log)
		return err
	}

	stop := make(chan struct{})

	// The tee and its forwarders are not joined on shutdown: a tee blocked
	// in a read of a silent stdin cannot be unblocked portably and must
	// not block teardown. Closing the children's stdins directly below
	// keeps cancellation cooperative regardless.
	if p.tee != nil {
		go p.tee.run(stop)
		for _, b := range p.branches {
			if b.stdin != nil {
				go b.forward()
			}
		}
	}

	readers := pool.New()
	for _, rt := range p.readers {
		readers.Go(func() { rt.col.read(stop, rt.out, e.Config) })
	}

	runErr := e.assemble(ctx, p.columns)

	close(stop)
	p.closeStdins()
	p.closeStdouts()
	readers.Wait()

	exitErr := p.reap(shutdownGrace, e.Log)

	if runErr != nil {
		return runErr
	}
	if p.tee != nil {
		if err := p.tee.err(); err != nil {
			return err
		}
	}
	return exitErr
}

// checkShell verifies that the configured shell resolves before any child
// is started. A '#' expression with no usable shell surfaces as a
// pattern-level error pointing at the expression, with no work begun.
func (e *Engine) checkShell() error {
	for _, expr := range e.Template.Exprs() {
		if !expr.RawShell {
			continue
		}
		bin := e.Launcher.Shell.Bin()
		if bin != "" {
			if _, err := exec.LookPath(bin); err == nil {
				return nil
			}
		}
		return &pattern.Error{
			Input: e.Template.Source,
			Kind:  pattern.KindShellNotConfigured,
			Pos:   expr.Pos,
			Off:   expr.Off,
			Shell: bin,
		}
	}
	return nil
}

// build spawns every child left-to-right and wires the execution graph.
func (e *Engine) build(ctx context.Context) (*plan, error) {
	p := &plan{}

	for _, seg := range e.Template.Segments {
		switch seg := seg.(type) {
		case pattern.Literal:
			p.columns = append(p.columns, &literalColumn{text: []byte(seg)})
		case *pattern.Expr:
			if err := e.buildExpr(ctx, p, seg); err != nil {
				return p, err
			}
		}
	}

	if len(p.branches) > 0 {
		stdin := e.Stdin
		if stdin == nil {
			stdin = bytes.NewReader(nil)
		}
		p.tee = newTee(stdin, e.Config, p.branches, e.Log)
	}
	return p, nil
}

func (e *Engine) buildExpr(ctx context.Context, p *plan, expr *pattern.Expr) error {
	consumes := Consumes(expr, e.Registry)
	specs := spawn.Specs(expr)

	if len(specs) == 0 {
		// The identity expression forwards stdin records directly,
		// without a child process.
		b := newTeeBranch(e.Config.Sep)
		p.branches = append(p.branches, b)
		p.columns = append(p.columns, &spliceColumn{branch: b})
		return nil
	}

	firstIdx := len(p.children)
	var prevRead *os.File

	for i, spec := range specs {
		cmd := e.Launcher.Command(ctx, spec)
		cmd.Stderr = e.Stderr
		c := &child{spec: spec, cmd: cmd}

		// Child-side pipe ends, closed in the parent once the child holds
		// its own copies.
		var childEnds []io.Closer

		switch {
		case i > 0:
			cmd.Stdin = prevRead
			childEnds = append(childEnds, prevRead)
		case consumes:
			pr, pw, err := os.Pipe()
			if err != nil {
				return &spawn.Error{Stage: i, Spec: spec, Err: err}
			}
			cmd.Stdin = pr
			c.stdin = pw
			childEnds = append(childEnds, pr)
		}

		pr, pw, err := os.Pipe()
		if err != nil {
			closeAll(childEnds)
			if c.stdin != nil {
				c.stdin.Close()
			}
			return &spawn.Error{Stage: i, Spec: spec, Err: err}
		}
		cmd.Stdout = pw
		childEnds = append(childEnds, pw)

		if err := cmd.Start(); err != nil {
			closeAll(childEnds)
			pr.Close()
			if c.stdin != nil {
				c.stdin.Close()
			}
			return &spawn.Error{Stage: i, Spec: spec, Err: err}
		}
		closeAll(childEnds)

		if i == len(specs)-1 {
			c.stdout = pr
		} else {
			prevRead = pr
		}

		p.children = append(p.children, c)
		e.Log.Debug("spawned child",
			zap.String("spec", spec.String()),
			zap.Int("pid", cmd.Process.Pid))
	}

	last := p.children[len(p.children)-1]
	col := newStreamColumn()
	p.readers = append(p.readers, readerTask{col: col, out: last.stdout})
	p.columns = append(p.columns, col)

	if consumes {
		b := newTeeBranch(e.Config.Sep)
		b.stdin = p.children[firstIdx].stdin
		p.branches = append(p.branches, b)
	}
	return nil
}

// assemble is the single-threaded row loop: one record from every column
// in template order, concatenated and emitted as one output record. The
// first exhausted column ends the run.
func (e *Engine) assemble(ctx context.Context, cols []column) error {
	if len(cols) == 0 {
		return nil
	}

	w := record.NewWriter(e.Stdout, e.Config)
	var row bytes.Buffer

	for {
		if err := ctx.Err(); err != nil {
			w.Flush()
			return err
		}

		row.Reset()
		exhausted := false
		for i, col := range cols {
			rec, err := col.next()
			if errors.Is(err, io.EOF) {
				e.Log.Debug("column exhausted", zap.Int("column", i))
				exhausted = true
				break
			}
			if err != nil {
				w.Flush()
				return err
			}
			row.Write(rec)
		}
		if exhausted {
			break
		}

		if err := w.WriteRecord(row.Bytes()); err != nil {
			return err
		}
	}

	return w.Flush()
}

func (p *plan) closeStdins() {
	for _, c := range p.children {
		if c.stdin != nil {
			c.stdin.Close()
		}
	}
}

func (p *plan) closeStdouts() {
	for _, c := range p.children {
		if c.stdout != nil {
			c.stdout.Close()
		}
	}
}

// reap waits on every child in reverse spawn order, killing any that
// outlives the grace period, and returns the leftmost non-zero exit code.
// Children that died from a signal during shutdown do not count as
// failures. Every successfully spawned child is waited on, even on error.
func (p *plan) reap(grace time.Duration, log *zap.Logger) error {
	codes := make([]int, len(p.children))
	for i := len(p.children) - 1; i >= 0; i-- {
		codes[i] = p.children[i].wait(grace, log)
	}
	for i, code := range codes {
		if code != 0 {
			log.Debug("forwarding child exit code",
				zap.String("spec", p.children[i].spec.String()),
				zap.Int("code", code))
			return &spawn.ExitError{Code: code}
		}
	}
	return nil
}

func (c *child) wait(grace time.Duration, log *zap.Logger) int {
	done := make(chan error, 1)
	go func() { done <- c.cmd.Wait() }()

	var err error
	select {
	case err = <-done:
	case <-time.After(grace):
		log.Debug("grace period expired, killing child",
			zap.String("spec", c.spec.String()))
		c.cmd.Process.Kill()
		err = <-done
	}

	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if code := ee.ExitCode(); code > 0 {
			return code
		}
		// Killed by a signal, expected during shutdown.
		return 0
	}
	log.Warn("wait failed", zap.String("spec", c.spec.String()), zap.Error(err))
	return 0
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
