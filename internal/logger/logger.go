// Package logger provides logging for the pathway CLI.
//
// Console output is off unless verbose mode is enabled with --verbose, in
// which case messages are written to stderr. A log file can be added with
// SetLogFile; it receives every message as JSON whether or not verbose mode
// is on, and is rotated by size.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	file    *lumberjack.Logger
	log     = zap.NewNop()
	fileLog = zap.NewNop()
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the console writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// SetLogFile starts writing JSON logs to path. An empty path stops file
// logging.
func SetLogFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		_ = file.Close()
		file = nil
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}
	rebuild()
	return nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	_ = log.Sync()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	rebuild()
	return err
}

// rebuild recreates the zap logger from the current settings.
// Caller must hold mu.
func rebuild() {
	var cores []zapcore.Core
	fileLog = zap.NewNop()
	if verbose && output != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig()),
			zapcore.AddSync(output),
			zap.DebugLevel,
		))
	}
	if file != nil {
		fc := zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.AddSync(file),
			zap.DebugLevel,
		)
		cores = append(cores, fc)
		fileLog = zap.New(fc)
	}
	log = zap.New(zapcore.NewTee(cores...))
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
	}
}

func fileEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func current() (*zap.Logger, bool, io.Writer) {
	mu.RLock()
	defer mu.RUnlock()
	return log, verbose, output
}

func currentFile() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return fileLog
}

// Debug logs a debug message.
func Debug(format string, args ...any) {
	l, _, _ := current()
	if ce := l.Check(zap.DebugLevel, ""); ce != nil {
		ce.Message = fmt.Sprintf(format, args...)
		ce.Write()
	}
}

// Section prints a section header to the console in verbose mode and
// records it in the log file.
func Section(name string) {
	_, v, w := current()
	if v && w != nil {
		fmt.Fprintf(w, "\n=== %s ===\n", name)
	}
	currentFile().Debug("section " + name)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	l, _, _ := current()
	if ce := l.Check(zap.InfoLevel, ""); ce != nil {
		ce.Message = fmt.Sprintf(format, args...)
		ce.Write()
	}
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	l, _, _ := current()
	if ce := l.Check(zap.WarnLevel, ""); ce != nil {
		ce.Message = fmt.Sprintf(format, args...)
		ce.Write()
	}
}
