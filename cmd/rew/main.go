// rew - a line-oriented text processing multi-tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rewtool/rew"
	"github.com/rewtool/rew/internal/cli"
	"github.com/rewtool/rew/internal/pattern"
)

func main() {
	err := cli.Execute(context.Background())
	if err != nil {
		var perr *pattern.Error
		if errors.As(err, &perr) {
			fmt.Fprint(os.Stderr, perr.Explain())
		} else if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, "rew:", msg)
		}
	}
	os.Exit(rew.ExitCode(err))
}
