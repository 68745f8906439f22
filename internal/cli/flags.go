package cli

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rewtool/rew/internal/pattern"
	"github.com/rewtool/rew/internal/record"
	"github.com/rewtool/rew/internal/spawn"
)

// Global flag names. Each except --escape is also bound to its environment
// variable so spawned children inherit the parent's configuration without
// repeating the flags.
const (
	flagNull    = "null"
	flagBufMode = "buf-mode"
	flagBufSize = "buf-size"
	flagEscape  = "escape"
	flagShell   = "shell"
)

func registerGlobalFlags(root *cobra.Command) {
	fl := root.PersistentFlags()

	fl.BoolP(flagNull, "0", false, "line delimiter is NUL, not newline")
	fl.String(flagBufMode, record.Default().BufMode.String(),
		"output buffering mode: \"line\" flushes stdout after each line, \"full\" only when the buffer is full")
	fl.Int(flagBufSize, record.DefaultBufSize, "size of a buffer used for IO operations")
	fl.String(flagEscape, string(pattern.DefaultEscape), "escape character for patterns")
	fl.String(flagShell, "", "shell used for #-marked pattern expressions")

	mustBindPFlag(flagNull, fl.Lookup(flagNull))
	mustBindEnv(flagNull, record.EnvNull)
	mustBindPFlag(flagBufMode, fl.Lookup(flagBufMode))
	mustBindEnv(flagBufMode, record.EnvBufMode)
	mustBindPFlag(flagBufSize, fl.Lookup(flagBufSize))
	mustBindEnv(flagBufSize, record.EnvBufSize)
	mustBindPFlag(flagShell, fl.Lookup(flagShell))
	mustBindEnv(flagShell, record.EnvShell)
	mustBindPFlag(flagEscape, fl.Lookup(flagEscape))
}

func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

func mustBindEnv(input ...string) {
	if err := viper.BindEnv(input...); err != nil {
		panic("failed to bind env key: " + err.Error())
	}
}

// framingConfig resolves the record framing from flags and environment.
// It is decided once here; I/O code receives it as a value.
func framingConfig() (record.Config, error) {
	mode, err := record.ParseBufMode(viper.GetString(flagBufMode))
	if err != nil {
		return record.Config{}, err
	}

	cfg := record.Config{
		Sep:     '\n',
		BufMode: mode,
		BufSize: viper.GetInt(flagBufSize),
	}
	if viper.GetBool(flagNull) {
		cfg.Sep = 0
	}
	if err := cfg.Validate(); err != nil {
		return record.Config{}, err
	}
	return cfg, nil
}

func shellFromFlags() spawn.Shell {
	if bin := viper.GetString(flagShell); bin != "" {
		return spawn.NewShell(bin)
	}
	return spawn.DefaultShell()
}

func escapeFromFlags() (rune, error) {
	value := viper.GetString(flagEscape)
	ch, size := utf8.DecodeRuneInString(value)
	if size == 0 || size != len(value) {
		return 0, fmt.Errorf("escape must be a single character, got %q", value)
	}
	switch ch {
	case '{', '}', '|', '\'', '"':
		return 0, fmt.Errorf("%q cannot be used as the escape character", value)
	}
	return ch, nil
}
