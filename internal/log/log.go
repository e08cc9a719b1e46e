// Package log defines the logging setup shared by every scout component.
//
// Loggers are plain *slog.Logger values injected through constructors;
// there is no package-level logger. A component that wants scoped fields
// derives its own with logger.With("component", ...).
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger aliases *slog.Logger so components can name the dependency
// without importing slog themselves. The alias keeps the full slog
// surface available, With included.
type Logger = *slog.Logger

// Config controls handler construction.
type Config struct {
	// Level is the minimum level to emit. The zero value is slog.LevelInfo.
	Level slog.Level

	// JSON switches the handler from text to JSON output.
	JSON bool

	// AddSource attaches file and line information to every record.
	AddSource bool
}

// New builds a logger writing to stderr.
func New(cfg Config) Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter builds a logger writing to w. Tests use it to capture
// output in a buffer.
func NewWithWriter(w io.Writer, cfg Config) Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// NewNop returns a logger that drops everything. Test-only; production
// components always receive a real logger at startup.
func NewNop() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
