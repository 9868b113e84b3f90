package logging

import (
	"log/slog"
	"os"
)

// LoggingService holds the process-wide logger and its file writer.
type LoggingService struct {
	Logger *slog.Logger
	writer *RotatingWriter
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger and installs it as the slog
// default.
func InitLogger(logDir, level string, retentionWeeks int, maxFileSize int64) {
	logger, writer := SetupLogger(logDir, level, retentionWeeks, maxFileSize)
	DefaultLoggingService = &LoggingService{Logger: logger, writer: writer}
	slog.SetDefault(logger)
}

// Shutdown closes the rotating file writer, if any.
func Shutdown() {
	if DefaultLoggingService != nil && DefaultLoggingService.writer != nil {
		_ = DefaultLoggingService.writer.Close()
	}
}

// Logger returns the global logger, or a stderr fallback for code paths
// that log before InitLogger runs.
func Logger() *slog.Logger {
	if DefaultLoggingService != nil && DefaultLoggingService.Logger != nil {
		return DefaultLoggingService.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Package-level helpers for direct access.

func Info(msg string, args ...any)  { Logger().Info(msg, args...) }
func Warn(msg string, args ...any)  { Logger().Warn(msg, args...) }
func Error(msg string, args ...any) { Logger().Error(msg, args...) }
func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }
