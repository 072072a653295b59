package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestInit_DebugSwitchesLevel(t *testing.T) {
	t.Setenv("DEBUG", "true")
	Init()
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("debug level must be enabled with DEBUG=true")
	}

	t.Setenv("DEBUG", "")
	Init()
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("debug level must be off by default")
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("info level must stay enabled")
	}
}
