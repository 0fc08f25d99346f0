// Package logger holds the process-wide structured logger. Logs go to a file or nowhere;
// standard output and standard error are reserved for results and diagnostics.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Config struct {
	Path  string // empty discards all records
	Debug bool
}

var (
	mu      sync.RWMutex
	global  = discard()
	logFile *os.File
)

// Setup installs the global logger and returns a cleanup that closes the log file.
// A file opened by an earlier Setup is closed. On error the global logger discards.
func Setup(cfg Config) (func() error, error) {
	if cfg.Path == "" {
		setDiscard()
		return func() error { return nil }, nil
	}

	path := filepath.Clean(cfg.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		setDiscard()
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		setDiscard()
		return nil, err
	}

	l := slog.New(newHandler(f, cfg.Debug))
	swap(l, f)

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		// A later Setup already closed f.
		if logFile != f {
			return nil
		}
		logFile = nil
		global = discard()
		return f.Close()
	}

	return cleanup, nil
}

func newHandler(w io.Writer, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				t := a.Value.Time().UTC()
				a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
			}
			return a
		},
	})
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func setDiscard() {
	swap(discard(), nil)
}

// swap installs l and f, closing the previous log file.
func swap(l *slog.Logger, f *os.File) {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil && logFile != f {
		_ = logFile.Close()
	}
	global = l
	logFile = f
}
