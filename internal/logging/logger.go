package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// InitLogger initializes the global logger with configuration from environment variables
func InitLogger() {
	Logger = log.New(os.Stderr)

	logLevel := ParseLevel(os.Getenv("LOG_LEVEL"))
	SetLevel(Logger, logLevel)

	Logger.SetReportTimestamp(true)
	Logger.SetPrefix("[strata] ")

	Logger.Debug("Logger initialized successfully", "level", logLevel)
}

// ParseLevel maps a free-form level name onto a LogLevel, defaulting to debug.
func ParseLevel(raw string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// SetLevel configures the logger with the specified level
func SetLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case InfoLevel:
		logger.SetLevel(log.InfoLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.DebugLevel)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithComponent tags log lines with the emitting subsystem.
func WithComponent(name string) *log.Logger {
	return WithFields("component", name)
}

// WithChunk creates a logger with chunk index context
func WithChunk(index int) *log.Logger {
	return WithFields("chunk_index", index)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration interface{}) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}
