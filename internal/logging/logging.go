package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "gomission.log"

var (
	mu           sync.Mutex
	logger       = newLogger(io.Discard)
	traceEnabled bool
	logFile      *os.File
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// DefaultPath returns the log file location under the user cache directory,
// falling back to the working directory.
func DefaultPath() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return defaultLogFile
	}
	return filepath.Join(dir, "gomission", defaultLogFile)
}

// Configure directs log output to path, creating parent directories as
// needed. An empty path uses DefaultPath. The terminal belongs to the UI, so
// logs never go to stdout or stderr once configured.
func Configure(path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger.SetOutput(f)
	return nil
}

// SetOutput replaces the destination. Intended for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Close releases the log file, if any, and discards further output.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(io.Discard)
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	traceEnabled = enabled
	if enabled {
		logger.SetLevel(logrus.TraceLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Error writes err to the log. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	logger.WithError(err).Error("error")
}

// Warn records a recoverable problem.
func Warn(msg string, fields map[string]interface{}) {
	logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Trace appends a structured entry when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := logger.WithField("event", event)
	switch p := payload.(type) {
	case nil:
	case map[string]interface{}:
		entry = entry.WithFields(logrus.Fields(p))
	default:
		entry = entry.WithField("payload", p)
	}
	entry.Trace(event)
}
