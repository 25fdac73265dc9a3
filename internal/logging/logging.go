// Package logging builds the slog loggers used by the converter, the watcher
// and the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Format represents the available log output formats.
type Format string

const (
	FormatPretty Format = "pretty" // human-readable (tint)
	FormatJSON   Format = "json"   // JSON lines
	FormatText   Format = "text"   // key=value pairs
)

// Formats lists every accepted format name.
var Formats = []string{string(FormatPretty), string(FormatJSON), string(FormatText)}

// Levels lists every accepted level name.
var Levels = []string{"debug", "info", "warn", "warning", "error"}

// New returns a logger writing to w. The pretty format is colorized unless
// NO_COLOR is set.
func New(w io.Writer, format Format, level slog.Level) *slog.Logger {
	var handler slog.Handler

	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case FormatText:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		_, noColor := os.LookupEnv("NO_COLOR")
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    noColor,
		})
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseFormat converts a string to Format, defaulting to pretty.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatPretty
	}
}

// ParseLevel converts a string to slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
