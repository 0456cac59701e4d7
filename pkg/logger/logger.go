// Package logger provides a simple logging interface backed by zap
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the logging interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Config controls level and encoding of the logger
type Config struct {
	Level  string
	Format string // "console" or "json"
}

// logger implements the Logger interface
type logger struct {
	sugar *zap.SugaredLogger
}

// New creates a new logger instance configured from LOG_LEVEL and LOG_FORMAT
func New() Logger {
	return NewWithConfig(Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// NewWithConfig creates a logger with an explicit configuration
func NewWithConfig(cfg Config) Logger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if strings.ToLower(cfg.Format) == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), parseLevel(cfg.Level))

	// skip one frame so callers see their own file, not this wrapper
	z := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)

	return &logger{sugar: z.Sugar()}
}

// Nop returns a logger that discards everything
func Nop() Logger {
	return &logger{sugar: zap.NewNop().Sugar()}
}

// parseLevel converts string log level to a zap level
func parseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ValidLevel reports whether levelStr names a known level
func ValidLevel(levelStr string) bool {
	switch strings.ToLower(levelStr) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func (l *logger) Debug(v ...interface{})                 { l.sugar.Debug(v...) }
func (l *logger) Debugf(format string, v ...interface{}) { l.sugar.Debugf(format, v...) }
func (l *logger) Info(v ...interface{})                  { l.sugar.Info(v...) }
func (l *logger) Infof(format string, v ...interface{})  { l.sugar.Infof(format, v...) }
func (l *logger) Warn(v ...interface{})                  { l.sugar.Warn(v...) }
func (l *logger) Warnf(format string, v ...interface{})  { l.sugar.Warnf(format, v...) }
func (l *logger) Error(v ...interface{})                 { l.sugar.Error(v...) }
func (l *logger) Errorf(format string, v ...interface{}) { l.sugar.Errorf(format, v...) }

// Fatal logs an error message and exits
func (l *logger) Fatal(v ...interface{}) { l.sugar.Fatal(v...) }

// Fatalf logs a formatted error message and exits
func (l *logger) Fatalf(format string, v ...interface{}) { l.sugar.Fatalf(format, v...) }
