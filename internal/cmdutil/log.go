// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Log formats.
const (
	LogText = "text"
	LogJSON = "json"
)

// ParseLevel maps debug|info|warn|error (case-insensitive) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
	}
	return l, nil
}

// NewLogger builds the diagnostics logger. A quiet logger discards everything.
func NewLogger(dst io.Writer, level, format string, quiet bool) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if quiet {
		dst = io.Discard
	}
	opts := &slog.HandlerOptions{Level: lvl, ReplaceAttr: replaceTimeAttr}

	var h slog.Handler
	switch strings.ToLower(format) {
	case LogText, "":
		h = slog.NewTextHandler(dst, opts)
	case LogJSON:
		h = slog.NewJSONHandler(dst, opts)
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
	return slog.New(h), nil
}

func replaceTimeAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(slog.TimeKey, a.Value.Time().Local().Format("2006-01-02 15:04:05"))
	}
	return a
}
