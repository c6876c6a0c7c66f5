// Package logging configures the process-wide slog default.
package logging

import (
	"log/slog"
	"os"
)

// Init sets the default logger writing to stderr. Verbose enables
// debug-level output.
func Init(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
