// Package logging provides component loggers backed by a shared logrus logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	root    = newRoot()
	loggers = make(map[string]*logrus.Entry)
	mu      sync.Mutex
	sink    io.Closer
)

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&TextFormatter{})
	return l
}

// NewLogger returns the cached entry for component. Entries share one logger,
// so Init reconfigures loggers created before it ran.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if logger, ok := loggers[component]; ok {
		return logger
	}
	entry := root.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Init applies cfg to the shared logger. It may be called again; a previously
// opened log file is closed.
func Init(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if sink != nil {
		_ = sink.Close()
		sink = nil
	}

	debug := cfg.Debug || os.Getenv("RVIEW_DEBUG") == "1"
	levelStr := "info"
	switch {
	case os.Getenv("RVIEW_LOG_LEVEL") != "":
		levelStr = os.Getenv("RVIEW_LOG_LEVEL")
	case debug:
		levelStr = "debug"
	case cfg.Level != "":
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	root.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		root.SetFormatter(&logrus.JSONFormatter{})
	default:
		root.SetFormatter(&TextFormatter{})
	}

	var writers []io.Writer
	if cfg.File != "" {
		path := expandPath(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		sink = file
		writers = append(writers, file)
	}

	if logToStderr(cfg.Stderr, debug || level >= logrus.DebugLevel) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		root.SetOutput(io.Discard)
	case 1:
		root.SetOutput(writers[0])
	default:
		root.SetOutput(io.MultiWriter(writers...))
	}
	return nil
}

// SetOutput redirects every logger to w. Tests use it to capture entries.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root.SetOutput(w)
}

// SetLevel changes the minimum level of every logger.
func SetLevel(level logrus.Level) {
	mu.Lock()
	defer mu.Unlock()
	root.SetLevel(level)
}

// Close releases the log file opened by Init, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	root.SetOutput(io.Discard)
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	return err
}

func logToStderr(mode string, debug bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	fd := os.Stderr.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return debug || !interactive
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
