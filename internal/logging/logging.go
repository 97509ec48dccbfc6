// Package logging provides structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Info level)
	InitLogger(LevelInfo, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// ParseLevel maps a level name onto a Level. Unknown names map to Info.
func ParseLevel(name string) Level {
	switch name {
	case "debug":
		return LevelDebug
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// ParseFormat maps a format name onto a Format. Unknown names map to text.
func ParseFormat(name string) Format {
	if name == "json" {
		return FormatJSON
	}
	return FormatText
}

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// DocumentWritten logs a completed document serialization.
func DocumentWritten(name string, measurements, units int, args ...any) {
	allArgs := []any{
		"document", name,
		"measurements", measurements,
		"units", units,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("document_written", allArgs...)
}

// DocumentRead logs a completed document parse.
func DocumentRead(name string, species, measurements int, args ...any) {
	allArgs := []any{
		"document", name,
		"species", species,
		"measurements", measurements,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("document_read", allArgs...)
}

// ArchiveWritten logs a saved archive.
func ArchiveWritten(path, format string, entries int, args ...any) {
	allArgs := []any{
		"path", path,
		"format", format,
		"entries", entries,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("archive_written", allArgs...)
}

// ArchiveRead logs a loaded archive.
func ArchiveRead(path, format string, args ...any) {
	allArgs := []any{
		"path", path,
		"format", format,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("archive_read", allArgs...)
}

// CatalogChanged logs a catalog mutation.
func CatalogChanged(operation, name string, args ...any) {
	allArgs := []any{
		"operation", operation,
		"name", name,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("catalog_changed", allArgs...)
}
