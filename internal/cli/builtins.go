package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rewtool/rew/internal/builtin"
)

// newBuiltinCmds wraps every registered built-in as a subcommand. Flag
// parsing is left to the built-in itself so the engine and the CLI resolve
// arguments identically; framing still arrives through the environment.
func newBuiltinCmds(reg *builtin.Registry) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(reg.All()))
	for _, bc := range reg.All() {
		cmds = append(cmds, &cobra.Command{
			Use:                bc.Name(),
			Short:              bc.Summary(),
			DisableFlagParsing: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := framingConfig()
				if err != nil {
					return err
				}
				streams := builtin.IO{
					Config: cfg,
					In:     os.Stdin,
					Out:    os.Stdout,
					Err:    os.Stderr,
				}
				return bc.Run(cmd.Context(), streams, args)
			},
		})
	}
	return cmds
}
