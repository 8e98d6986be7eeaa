package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log output formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Rotation limits for the optional log file.
const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 3
	logFileMaxAgeDays = 14
)

// Options configures the process-wide logger.
type Options struct {
	// Debug lowers the level to DEBUG and adds source locations.
	Debug bool

	// Format is FormatText (default) or FormatJSON.
	Format string

	// File, when set, receives a copy of every record and is rotated by size.
	File string

	// Output is the primary destination. Defaults to os.Stderr, since stdout
	// carries the stdio MCP transport.
	Output io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds a slog.Logger from opts, installs it as the default logger
// and returns it together with a Closer for the log file (a no-op when no
// file is configured).
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(out, rotating)
		closer = rotating
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	}

	var handler slog.Handler
	switch opts.Format {
	case "", FormatText:
		handler = slog.NewTextHandler(out, handlerOpts)
	case FormatJSON:
		handler = slog.NewJSONHandler(out, handlerOpts)
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("unsupported log format %q (supported: text, json)", opts.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer, nil
}
