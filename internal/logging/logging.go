package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoder.
type Format string

const (
	// FormatConsole is human-readable output.
	FormatConsole Format = "CONSOLE"
	// FormatJSON is structured JSON output.
	FormatJSON Format = "JSON"
)

const (
	envLevel  = "NETPLANLINT_LOG_LEVEL"
	envFormat = "NETPLANLINT_LOG_FORMAT"
)

// ParseLevel converts DEBUG/INFO/WARN/ERROR (case-insensitive) into a zap
// level. Unknown values fall back to WARN.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// ParseFormat returns the matching Format, or FormatConsole.
func ParseFormat(format string) Format {
	if Format(strings.ToUpper(format)) == FormatJSON {
		return FormatJSON
	}
	return FormatConsole
}

// New builds a logger writing to stderr. Empty level or format values are
// taken from NETPLANLINT_LOG_LEVEL and NETPLANLINT_LOG_FORMAT.
func New(level, format string) *zap.Logger {
	if level == "" {
		level = os.Getenv(envLevel)
	}
	if format == "" {
		format = os.Getenv(envFormat)
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var encoder zapcore.Encoder
	switch ParseFormat(format) {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.NewAtomicLevelAt(ParseLevel(level)))
	return zap.New(core).Named("netplanlint")
}
