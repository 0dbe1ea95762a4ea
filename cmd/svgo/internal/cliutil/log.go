// Package cliutil holds the small pieces of the svgo CLI that aren't the
// optimization engine itself: logging setup and version reporting. Logging
// wraps log/slog the way MacroPower-x/log does (a Config with a
// RegisterFlags method and a CreateHandler-style constructor), reimplemented
// here rather than imported since that package lives in a sibling example
// repo, not a published module this tree can depend on.
package cliutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
)

// ErrUnknownLogLevel is returned by GetLevel for an unrecognized level
// string.
var ErrUnknownLogLevel = errors.New("unknown log level")

// LogConfig holds the --quiet/--log-level CLI surface for svgo.
type LogConfig struct {
	Quiet bool
	Level string
}

// NewLogConfig returns defaults: not quiet, level "info".
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}

// RegisterFlags adds -q/--quiet and --log-level to flags.
func (c *LogConfig) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.Quiet, "quiet", "q", false, "suppress summary output on stderr")
	flags.StringVar(&c.Level, "log-level", "info", "log level: debug, info, warn, error")
}

// NewHandler builds a slog.Handler writing to w at the configured level.
// Quiet raises the effective level to warn regardless of --log-level, the
// way the CLI's -q flag is documented to behave (summary lines suppressed,
// errors still surfaced).
func (c *LogConfig) NewHandler(w io.Writer) (slog.Handler, error) {
	lvl, err := GetLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if c.Quiet && lvl < slog.LevelWarn {
		lvl = slog.LevelWarn
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}), nil
}

// GetLevel parses a log level string.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
	}
}
