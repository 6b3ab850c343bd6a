package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New 依設定建立 slog.Logger 並設為預設 logger
// format: "json" 或 "text"；level: debug/info/warn/error
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if strings.EqualFold(format, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel 未知的值一律視為 info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
