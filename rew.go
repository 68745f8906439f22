package rew

import (
	"context"
	"errors"
	"io"

	"github.com/rewtool/rew/internal/builtin"
	"github.com/rewtool/rew/internal/engine"
	"github.com/rewtool/rew/internal/logger"
	"github.com/rewtool/rew/internal/pattern"
	"github.com/rewtool/rew/internal/record"
	"github.com/rewtool/rew/internal/spawn"
)

// Version is the rew version string.
const Version = "0.1.0"

// Exit codes of a composition run.
const (
	ExitSuccess    = 0
	ExitEngine     = 1
	ExitParseError = 2
)

// Options configures a composition run. The zero value uses LF-delimited
// records, the default buffer size and the platform shell.
type Options struct {
	// Escape is the pattern escape character; '\' when zero.
	Escape rune

	// Null switches the record delimiter from LF to NUL.
	Null bool

	// BufSize bounds I/O buffers and the maximal record length.
	BufSize int

	// LineBuffered flushes stdout after every record.
	LineBuffered bool

	// Shell is the interpreter for #-marked expressions; resolved from the
	// SHELL environment variable or the platform default when empty.
	Shell string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run parses a composition pattern and executes it until the first column
// is exhausted, an error occurs, or ctx is cancelled.
func Run(ctx context.Context, patternSrc string, opts Options) error {
	escape := opts.Escape
	if escape == 0 {
		escape = pattern.DefaultEscape
	}
	tmpl, err := pattern.Parse(patternSrc, escape)
	if err != nil {
		return err
	}

	cfg := record.Config{Sep: '\n', BufMode: record.BufFull, BufSize: opts.BufSize}
	if cfg.BufSize == 0 {
		cfg.BufSize = record.DefaultBufSize
	}
	if opts.Null {
		cfg.Sep = 0
	}
	if opts.LineBuffered {
		cfg.BufMode = record.BufLine
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	shell := spawn.DefaultShell()
	if opts.Shell != "" {
		shell = spawn.NewShell(opts.Shell)
	}
	launcher, err := spawn.NewLauncher(cfg, shell)
	if err != nil {
		return err
	}

	log := logger.New()
	defer log.Sync()

	eng := &engine.Engine{
		Template: tmpl,
		Registry: builtin.Default(),
		Launcher: launcher,
		Config:   cfg,
		Log:      log,
		Stdin:    opts.Stdin,
		Stdout:   opts.Stdout,
		Stderr:   opts.Stderr,
	}
	return eng.Run(ctx)
}

// ExitCode maps an error from Run (or from the CLI) to the conventional
// process exit code: 0 for nil, 2 for pattern syntax errors, a child's own
// code for forwarded child failures, and 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var perr *ParseError
	if errors.As(err, &perr) {
		return ExitParseError
	}
	if code, ok := IsExitError(err); ok {
		return code
	}
	return ExitEngine
}
