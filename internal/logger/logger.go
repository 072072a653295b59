// Package logger configures structured logging for the process.
package logger

import (
	"log/slog"
	"os"
)

// Init installs a slog text handler whose level follows the DEBUG env var.
// SetDefault also rewires the stdlib log package onto this handler, so the
// pipeline's log.Printf output flows through it too.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// Debug logs item-level noise that only matters when diagnosing a run.
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}
