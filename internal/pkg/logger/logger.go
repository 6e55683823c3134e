package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

// LogLevel represents the log level
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// Config represents logger configuration
type Config struct {
	Level LogLevel
	// Pretty enables the human-readable console writer
	Pretty bool
	// Output defaults to os.Stdout
	Output io.Writer
}

// ParseLevel maps a config string onto a LogLevel, falling back to info.
func ParseLevel(s string) LogLevel {
	switch lvl := LogLevel(strings.ToLower(strings.TrimSpace(s))); lvl {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return lvl
	default:
		return InfoLevel
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Configure configures the global logger with the provided config
func Configure(config Config) zerolog.Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(config.Level.zerolog())

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
	return defaultLogger
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return defaultLogger.With().Str("component", name).Logger()
}

func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

func Info() *zerolog.Event {
	return defaultLogger.Info()
}

func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal logs a fatal message and exits the process
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

// WithFields adds multiple fields to the logger
func WithFields(fields map[string]interface{}) zerolog.Logger {
	ctx := defaultLogger.With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	return ctx.Logger()
}

func init() {
	Configure(Config{
		Level:  InfoLevel,
		Pretty: true,
		Output: os.Stdout,
	})
}
