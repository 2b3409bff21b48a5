package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

type Config struct {
	Level  string
	Format string // "text", "json", "console"
	Output io.Writer
}

var (
	once sync.Once
	lg   *slog.Logger
)

func Init(cfg Config) {
	once.Do(func() {
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		level := parseLevel(cfg.Level)
		var handler slog.Handler
		switch cfg.Format {
		case "json":
			handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
		case "text":
			handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
		default:
			handler = &tickHandler{w: out, level: level}
		}
		lg = slog.New(handler)
		slog.SetDefault(lg)
	})
}

func L() *slog.Logger {
	if lg == nil {
		Init(Config{Level: "info", Format: "console"})
	}
	return lg
}

func parseLevel(s string) slog.Level {
	switch s {
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

// tickHandler prints compact single-line records suited to a terminal
// that is redrawn every simulation tick:
//
//	15:04:05 INFO  controller retuned  max_speed=4
type tickHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

func (h *tickHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *tickHandler) Handle(_ context.Context, r slog.Record) error {
	line := r.Time.Format(time.TimeOnly) + " " + levelTag(r.Level) + " " + r.Message
	for _, a := range h.attrs {
		line += fmt.Sprintf("  %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf("  %s=%v", a.Key, a.Value)
		return true
	})
	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *tickHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &tickHandler{w: h.w, level: h.level, attrs: merged}
}

func (h *tickHandler) WithGroup(name string) slog.Handler {
	// Groups are flattened; the tick log never nests.
	return h
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}
