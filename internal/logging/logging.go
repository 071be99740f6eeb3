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

const defaultLogFile = "gridmenu.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logger       = zap.NewNop()
)

// Error writes errors to the shared log.
func Error(err error) {
	if err == nil {
		return
	}
	current().Error(err.Error(), zap.Error(err))
}

// Warn records a recoverable condition.
func Warn(msg string, fields ...zap.Field) {
	current().Warn(msg, fields...)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are emitted.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	l := logger
	mu.Unlock()
	if !enabled {
		return
	}
	l.Debug("trace", zap.String("event", event), zap.Any("payload", payload))
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	logPath = defaultLogFile
	if strings.TrimSpace(path) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		} else {
			logPath = path
		}
	}
	built, err := build(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	_ = logger.Sync()
	logger = built
}

// Use replaces the shared logger, mainly for tests.
func Use(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the shared logger, named for the calling component.
func Logger(name string) *zap.Logger {
	return current().Named(name)
}

// Sync flushes buffered entries.
func Sync() {
	_ = current().Sync()
}

func current() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func build(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Sampling = nil
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
