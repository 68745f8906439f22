// Package spawn starts the child processes of a composition: built-in
// subcommands of the same binary, external programs, and shell scripts.
// Every child inherits the record framing configuration through the
// environment so the whole process tree observes identical framing.
package spawn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rewtool/rew/internal/pattern"
	"github.com/rewtool/rew/internal/record"
)

// Kind is the command species of a Spec.
type Kind int

const (
	// KindBuiltin runs the same binary with a subcommand.
	KindBuiltin Kind = iota
	// KindExternal runs a program resolved via PATH.
	KindExternal
	// KindShell runs the configured shell with a verbatim script.
	KindShell
)

// Spec describes one pipeline stage to launch.
type Spec struct {
	Kind   Kind
	Name   string   // builtin or external program name
	Args   []string // arguments for builtin/external
	Script string   // shell script for KindShell
}

func (s Spec) String() string {
	switch s.Kind {
	case KindShell:
		return "# " + s.Script
	case KindExternal:
		return "!" + strings.Join(append([]string{s.Name}, s.Args...), " ")
	default:
		return strings.Join(append([]string{s.Name}, s.Args...), " ")
	}
}

// Specs converts an expression into the stage specs to launch. The identity
// expression {} yields no specs.
func Specs(e *pattern.Expr) []Spec {
	if e.RawShell {
		return []Spec{{Kind: KindShell, Script: e.Shell}}
	}
	specs := make([]Spec, 0, len(e.Pipeline))
	for _, cmd := range e.Pipeline {
		kind := KindBuiltin
		if cmd.External {
			kind = KindExternal
		}
		specs = append(specs, Spec{Kind: kind, Name: cmd.Name, Args: cmd.Args})
	}
	return specs
}

// Error reports a child that could not be started.
type Error struct {
	Stage int
	Spec  Spec
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to spawn stage %d (%s): %v", e.Stage, e.Spec, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ExitError carries a child's non-zero exit code so callers can forward it
// as the process exit status. The message is intentionally minimal; the
// child's own stderr already told the user what went wrong.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "" // intentionally empty — the child's own stderr is sufficient
}

// IsExitError reports whether err carries a child exit code.
func IsExitError(err error) (int, bool) {
	var e *ExitError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// Launcher builds exec.Cmd values for Specs.
type Launcher struct {
	Config record.Config
	Shell  Shell

	// Exe is the path of this binary, used to run built-ins.
	Exe string
}

// NewLauncher resolves the current executable and prepares a launcher.
func NewLauncher(cfg record.Config, shell Shell) (*Launcher, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("cannot resolve own executable: %w", err)
	}
	return &Launcher{Config: cfg, Shell: shell, Exe: exe}, nil
}

// Command builds the exec.Cmd for a spec. Stdio wiring is left to the
// caller; the environment is fully prepared here.
func (l *Launcher) Command(ctx context.Context, spec Spec) *exec.Cmd {
	var cmd *exec.Cmd
	switch spec.Kind {
	case KindShell:
		cmd = exec.CommandContext(ctx, l.Shell.Bin(), l.Shell.Args(spec.Script)...)
	case KindExternal:
		cmd = exec.CommandContext(ctx, spec.Name, spec.Args...)
	default:
		args := append([]string{spec.Name}, spec.Args...)
		cmd = exec.CommandContext(ctx, l.Exe, args...)
	}

	env := append(os.Environ(), l.Config.Env()...)
	env = append(env, record.EnvShell+"="+l.Shell.Bin())
	if spec.Kind == KindExternal && l.Config.BufMode == record.BufLine {
		env = append(env, LineBufEnv()...)
	}
	cmd.Env = env

	return cmd
}
