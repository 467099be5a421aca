package common

import (
	"log/slog"
	"os"
)

// NewCLILogger builds a text logger that outputs messages with their
// variables but no time or level noise, which reads better in an
// interactive terminal run.
func NewCLILogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey || a.Key == slog.LevelKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
