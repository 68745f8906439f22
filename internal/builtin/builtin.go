// Package builtin contains the built-in stream transformers and the
// registry the CLI and the x engine resolve them from. Every built-in reads
// records from stdin and writes records to stdout using the shared framing
// configuration; the engine spawns them as child processes of the same
// binary.
package builtin

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rewtool/rew/internal/record"
)

// IO carries the streams and framing configuration of one invocation.
type IO struct {
	Config record.Config
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
}

// Command is the interface every built-in implements.
type Command interface {
	// Name returns the identifier used as subcommand and in patterns.
	Name() string

	// Summary returns a one-line description for help output.
	Summary() string

	// Generator reports whether the command never reads stdin. The x
	// classifier treats this as a proven, static property; anything not on
	// this list is conservatively assumed to consume stdin.
	Generator() bool

	// Run executes the command, streaming records from streams.In to
	// streams.Out.
	Run(ctx context.Context, streams IO, args []string) error
}

// Registry maps built-in names to implementations.
type Registry struct {
	mu   sync.RWMutex
	cmds map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]Command)}
}

// Default returns a registry with every built-in registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(&Ascii{})
	r.Register(&Cat{})
	r.Register(&First{})
	r.Register(&Join{})
	r.Register(&Last{})
	r.Register(&Loop{})
	r.Register(&Lower{})
	r.Register(&Match{})
	r.Register(&Replace{})
	r.Register(&Seq{})
	r.Register(&Skip{})
	r.Register(&Split{})
	r.Register(&Stream{})
	r.Register(&Trim{})
	r.Register(&Upper{})
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(c Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds[c.Name()] = c
}

// Lookup returns a command by name.
func (r *Registry) Lookup(name string) (Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.cmds[name]
	if !ok {
		return nil, fmt.Errorf("unknown command: %q", name)
	}
	return c, nil
}

// IsGenerator reports whether name is a registered built-in that never
// reads stdin.
func (r *Registry) IsGenerator(name string) bool {
	c, err := r.Lookup(name)
	return err == nil && c.Generator()
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmds := make([]Command, 0, len(r.cmds))
	for _, c := range r.cmds {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}
