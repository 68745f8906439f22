package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rewtool/rew/internal/builtin"
	"github.com/rewtool/rew/internal/engine"
	"github.com/rewtool/rew/internal/logger"
	"github.com/rewtool/rew/internal/pattern"
	"github.com/rewtool/rew/internal/spawn"
)

func newXCmd(reg *builtin.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "x PATTERN...",
		Short: "Compose parallel shell pipelines using a pattern",
		Long: `Compose parallel shell pipelines using a pattern.

A pattern mixes literal text with {...} expressions. Each expression is a
pipeline of commands whose outputs are joined line-by-line into the output:

    rew x '{seq}. {upper}' < input

Markers right after the opening brace change how an expression runs:
':' asserts that the pipeline does not read stdin, '#' passes the rest of
the expression verbatim to the shell, and '!' before a command forces an
external program instead of a built-in.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := framingConfig()
			if err != nil {
				return err
			}
			escape, err := escapeFromFlags()
			if err != nil {
				return err
			}

			// Multiple pattern arguments form one pattern.
			tmpl, err := pattern.Parse(strings.Join(args, " "), escape)
			if err != nil {
				return err
			}

			launcher, err := spawn.NewLauncher(cfg, shellFromFlags())
			if err != nil {
				return err
			}

			log := logger.New()
			defer log.Sync()

			eng := &engine.Engine{
				Template: tmpl,
				Registry: reg,
				Launcher: launcher,
				Config:   cfg,
				Log:      log,
				Stdin:    os.Stdin,
				Stdout:   os.Stdout,
				Stderr:   os.Stderr,
			}
			return eng.Run(cmd.Context())
		},
	}
}
