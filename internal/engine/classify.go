package engine

import (
	"github.com/rewtool/rew/internal/builtin"
	"github.com/rewtool/rew/internal/pattern"
)

// Consumes reports whether an expression's pipeline reads the shared stdin
// stream. Generators must be proven, never assumed: a false positive only
// wastes a tee branch, while a false negative would deadlock the tee
// against a consumer that never reads.
func Consumes(e *pattern.Expr, reg *builtin.Registry) bool {
	if e.NoStdin {
		// The ':' marker is authoritative.
		return false
	}
	if e.RawShell {
		// Arbitrary shell scripts cannot be introspected.
		return true
	}
	if len(e.Pipeline) == 0 {
		// The identity expression {} passes stdin through.
		return true
	}

	first := e.Pipeline[0]
	if first.External {
		return true
	}
	return !reg.IsGenerator(first.Name)
}
