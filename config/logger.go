package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the application logger from GO_ENV and LOG_LEVEL.
// Production emits JSON for log shipping; everywhere else a text handler
// keeps local output readable. Unknown LOG_LEVEL values fall back to info.
func NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(os.Getenv("LOG_LEVEL"))}
	if os.Getenv("GO_ENV") == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
