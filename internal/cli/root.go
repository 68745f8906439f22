// Package cli wires the rew command tree: the x composition command plus
// one subcommand per built-in stream transformer.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rewtool/rew/internal/builtin"
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rew",
		Short:         "A line-oriented text processing multi-tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	registerGlobalFlags(root)

	reg := builtin.Default()
	root.AddCommand(newXCmd(reg))
	for _, cmd := range newBuiltinCmds(reg) {
		root.AddCommand(cmd)
	}

	return root
}

// Execute runs the CLI. The returned error is mapped to the process exit
// code by the caller.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
