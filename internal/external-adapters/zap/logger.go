// Package zap adapts go.uber.org/zap to the domain Logger interface.
package zap

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ochairo/license-reader/internal/domain/interfaces"
)

// Logger implements interfaces.Logger on top of a zap logger
type Logger struct {
	logger *zap.Logger
}

var _ interfaces.Logger = (*Logger)(nil)

// New creates a console logger writing to w at the given level
// (debug, info, warn or error; empty means info)
func New(level string, w io.Writer) (*Logger, error) {
	atomicLevel, err := resolveLevel(level)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), atomicLevel)

	return &Logger{logger: zap.New(core)}, nil
}

// NewFromZap wraps an existing zap logger
func NewFromZap(logger *zap.Logger) *Logger {
	return &Logger{logger: logger}
}

func resolveLevel(level string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) == "" {
		return zap.NewAtomicLevelAt(zapcore.InfoLevel), nil
	}

	var parsed zapcore.Level
	if err := parsed.Set(level); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid level %q: %w", level, err)
	}

	return zap.NewAtomicLevelAt(parsed), nil
}

func (l *Logger) must() *zap.Logger {
	if l == nil || l.logger == nil {
		return zap.NewNop()
	}
	return l.logger
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.must().Debug(msg, toZap(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.must().Info(msg, toZap(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.must().Warn(msg, toZap(fields)...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.must().Error(msg, toZap(fields)...)
}

// Sync flushes buffered log entries
func (l *Logger) Sync() error {
	return l.must().Sync()
}

func toZap(fields []interfaces.Field) []zap.Field {
	zapFields := make([]zap.Field, len(fields))
	for i, f := range fields {
		if err, ok := f.Value.(error); ok && f.Key == "error" {
			zapFields[i] = zap.Error(err)
			continue
		}
		zapFields[i] = zap.Any(f.Key, f.Value)
	}
	return zapFields
}
