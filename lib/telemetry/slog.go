package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the process-wide logger: key=value text on stderr.
// stdout stays untouched, it belongs to whatever the program is meant
// to print. verbose enables debug-level output.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
