// Package logging writes structured logs to a file so nothing interferes with
// the terminal UI. It wraps a zap logger behind a small set of helpers; trace
// entries are only emitted once SetTraceEnabled(true) has been called.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "rtc-menu.log"

var (
	mu           sync.Mutex
	logger       = zap.NewNop()
	traceEnabled bool
	logPath      = defaultLogFile
)

// Configure opens the log destination. Empty values fall back to the default
// path and the info level. Directories are created automatically when missing.
func Configure(path, level string) error {
	if strings.TrimSpace(path) == "" {
		path = defaultLogFile
	}
	lvl := zapcore.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	mu.Lock()
	old := logger
	logger = built
	logPath = path
	mu.Unlock()
	_ = old.Sync()
	return nil
}

// SetLogger swaps the underlying logger. Passing nil installs a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the active logger.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Path reports the configured log file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger().Sync()
}

// Error records err at error level. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	Logger().Error(err.Error(), zap.Error(err))
}

func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	Logger().Info(msg, fields...)
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry named event when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	Logger().Info("trace", zap.String("event", event), zap.Any("payload", payload))
}
