package slogx

import (
	"log/slog"
)

// Error returns a slog.Attr representing the provided error.
// The attribute key is "error" and the value is the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

const (
	// KeyLoggerName is the key for the logger name attribute.
	KeyLoggerName = "logger"
	// KeyPath is the key for event paths.
	KeyPath = "path"
	// KeyHandler is the key for handler names.
	KeyHandler = "handler"
)

// LoggerName creates a slog.Attr with the provided logger name.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// Path returns an attribute for an event path. The root path is logged as "<root>"
// so it does not disappear in console output.
func Path(path string) slog.Attr {
	if path == "" {
		return slog.String(KeyPath, "<root>")
	}
	return slog.String(KeyPath, path)
}

// Handler returns an attribute naming a handler.
func Handler(name string) slog.Attr {
	return slog.String(KeyHandler, name)
}
