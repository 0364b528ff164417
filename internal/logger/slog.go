package logger

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs the default slog logger: a text handler on w at Info, or Debug
// when verbose. A nil w logs to stderr.
func Setup(verbose bool, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	return l
}
