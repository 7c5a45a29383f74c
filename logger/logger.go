package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger wraps slog.Logger with the few helpers the CLI needs.
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// Options selects level, handler and destination.
type Options struct {
	Level  string
	Format string
	File   string
}

// New opens opts.File for appending and builds a text or JSON handler on it.
// With no file the logger discards everything, since the terminal belongs
// to the seat map.
func New(opts Options) (*Logger, error) {
	if strings.TrimSpace(opts.File) == "" {
		return Discard(), nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := NewWriter(file, opts)
	l.closer = file
	return l, nil
}

// NewWriter builds a logger writing to w.
func NewWriter(w io.Writer, opts Options) *Logger {
	level := getLogLevel(opts.Level)
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return &Logger{Logger: slog.New(handler)}
}

func Discard() *Logger {
	return &Logger{Logger: slog.New(discardHandler)}
}

// getLogLevel converts string to slog.Level
func getLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithLayout tags every record with the open layout.
func (l *Logger) WithLayout(name string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("layout", name)), closer: l.closer}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error())), closer: l.closer}
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
