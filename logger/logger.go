package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L is the global logger. It discards everything until Init enables it.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

const (
	logPrefix     = "arbor-"
	logSuffix     = ".log"
	retentionDays = 30
)

// Options configures the logger.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Default: $XDG_STATE_HOME/arbor/logs
	Level   slog.Level // Default: LevelInfo
}

// Init configures logging. Call from main before any log calls. The returned
// closer releases the log file.
func Init(opts Options) (io.Closer, error) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nopCloser{}, nil
	}

	logDir := opts.LogDir
	if logDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		logDir = dir
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	// Best effort.
	cleanOldLogs(logDir, time.Now())

	filename := filepath.Join(logDir, logPrefix+time.Now().Format("2006-01-02")+logSuffix)
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}

	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return f, nil
}

// DefaultDir returns $XDG_STATE_HOME/arbor/logs, falling back to
// ~/.local/state/arbor/logs.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "arbor", "logs"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "arbor", "logs"), nil
}

// cleanOldLogs removes log files older than retentionDays.
func cleanOldLogs(logDir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}

		// arbor-2024-01-05.log
		dateStr := strings.TrimPrefix(strings.TrimSuffix(name, logSuffix), logPrefix)
		logDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		if logDate.Before(cutoff) {
			os.Remove(filepath.Join(logDir, name))
		}
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Debug logs at debug level using the global logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at info level using the global logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at warn level using the global logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at error level using the global logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
