package spawn

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rewtool/rew/internal/record"
)

// ShellKind distinguishes the "run this script" argument convention of the
// supported shell families.
type ShellKind int

const (
	UnixShell ShellKind = iota
	WinCmd
	PowerShell
)

func (k ShellKind) commandOption() string {
	switch k {
	case WinCmd:
		return "/c"
	case PowerShell:
		return "-Command"
	default:
		return "-c"
	}
}

// Shell is the interpreter used for '#'-marked expressions.
type Shell struct {
	bin string
}

// NewShell wraps an explicit shell binary.
func NewShell(bin string) Shell {
	return Shell{bin: bin}
}

// DefaultShell resolves the shell from the SHELL environment variable,
// falling back to the platform default.
func DefaultShell() Shell {
	if bin := os.Getenv(record.EnvShell); bin != "" {
		return Shell{bin: bin}
	}
	if runtime.GOOS == "windows" {
		return Shell{bin: "cmd"}
	}
	return Shell{bin: "sh"}
}

// Bin returns the shell binary.
func (s Shell) Bin() string {
	return s.bin
}

// Kind classifies the shell by its binary name.
func (s Shell) Kind() ShellKind {
	stem := strings.ToLower(strings.TrimSuffix(filepath.Base(s.bin), filepath.Ext(s.bin)))
	switch stem {
	case "cmd":
		if runtime.GOOS == "windows" {
			return WinCmd
		}
		return UnixShell
	case "pwsh", "powershell":
		return PowerShell
	default:
		return UnixShell
	}
}

// Args returns the shell argv for running script.
func (s Shell) Args(script string) []string {
	return []string{s.Kind().commandOption(), script}
}
