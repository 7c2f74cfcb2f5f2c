// Package log holds the process wide zap logger. Output goes to stderr so
// stdout stays free for the status report.
package log

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process logger. It discards everything until Init is called.
var Logger = zap.NewNop()

// Options selects the logger level and encoding.
type Options struct {
	Level string
	JSON  bool
}

// Init builds the process logger from opts and installs it as Logger.
func Init(opts Options) error {
	l, err := New(opts, zapcore.Lock(os.Stderr))
	if err != nil {
		return err
	}
	Logger = l
	return nil
}

// New builds a logger writing to w.
func New(opts Options, w zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encCfg.EncodeCaller = nil
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	return zap.New(zapcore.NewCore(enc, w, level)), nil
}

func parseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}

// LogInfo logs an informational message.
func LogInfo(message string, fields ...zap.Field) {
	Logger.Info(message, fields...)
}

// LogWarn logs a warning.
func LogWarn(message string, fields ...zap.Field) {
	Logger.Warn(message, fields...)
}

// LogError logs an error.
func LogError(message string, fields ...zap.Field) {
	Logger.Error(message, fields...)
}

// LogDebug logs at debug level.
func LogDebug(message string, fields ...zap.Field) {
	Logger.Debug(message, fields...)
}
