package slog

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogFormat is the environment variable read by [GetFormatFromEnv] before
// falling back to LOG_FORMAT.
const EnvLogFormat = "RECALL_LOG_FORMAT"

// Format selects how log records are rendered.
type Format string

const (
	// FormatCompact is one line per record with the attributes as a JSON
	// object, colored on terminals:
	//
	//	10:40:35.120 INFO  Deck saved {"deck.id":"set-1","deck.kind":"flashcards"}
	FormatCompact Format = "compact"

	// FormatText is the log/slog key=value text format.
	FormatText Format = "text"

	// FormatJSON is the log/slog JSON format, for log aggregation.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Unknown names yield FormatCompact.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText
	case FormatJSON:
		return FormatJSON
	default:
		return FormatCompact
	}
}

// GetFormatFromEnv returns the format configured via RECALL_LOG_FORMAT or
// LOG_FORMAT. Default: compact.
func GetFormatFromEnv() Format {
	if format := os.Getenv(EnvLogFormat); format != "" {
		return ParseFormat(format)
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	return FormatCompact
}

// NewLogger returns a logger writing records at or above level to w in the
// given format.
func NewLogger(w io.Writer, level slog.Level, format Format) *slog.Logger {
	switch format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	case FormatText:
		return NewTextLogger(w, level)
	default:
		return slog.New(NewCompactHandler(w, level))
	}
}
