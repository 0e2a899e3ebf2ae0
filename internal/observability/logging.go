// Package observability holds logging setup shared by the CLI entrypoints.
package observability

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"onboardbuilder/internal/logfields"
)

// SetupLogging installs a slog text handler on stderr and returns a logger
// carrying a fresh run ID so every invocation can be traced in logs.
// The rendered document goes to stdout, so logs must stay on stderr.
func SetupLogging(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	logger := slog.New(handler).With(logfields.RunID(uuid.NewString()))
	slog.SetDefault(logger)
	return logger
}
