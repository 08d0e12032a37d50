// Package log builds the slog logger used by relaconctl and provides a raw
// tracer for wire-level report inspection.
//
// Console output routes records below Error to stdout and Error and above
// to stderr, so redirecting one stream never hides the other. When a log
// file is configured the console collapses to stderr and the file receives
// a copy of everything at the configured level.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelTrace sits below slog.LevelDebug and enables wire-level output such
// as raw report dumps.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a level name to its slog level. Unknown names and the
// empty string mean Info.
func ParseLevel(name string) slog.Level {
	switch name {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// routedHandler sends records below the split level to one handler and the
// rest to the other.
type routedHandler struct {
	split slog.Level
	low   slog.Handler
	high  slog.Handler
}

func (r routedHandler) pick(level slog.Level) slog.Handler {
	if level < r.split {
		return r.low
	}
	return r.high
}

func (r routedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return r.pick(level).Enabled(ctx, level)
}

func (r routedHandler) Handle(ctx context.Context, rec slog.Record) error {
	return r.pick(rec.Level).Handle(ctx, rec)
}

func (r routedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return routedHandler{split: r.split, low: r.low.WithAttrs(attrs), high: r.high.WithAttrs(attrs)}
}

func (r routedHandler) WithGroup(name string) slog.Handler {
	return routedHandler{split: r.split, low: r.low.WithGroup(name), high: r.high.WithGroup(name)}
}

// fanoutHandler forwards each record to every child handler that wants it.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, rec slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, rec.Level) {
			continue
		}
		if err := h.Handle(ctx, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	out := make(fanoutHandler, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// SetupLogger builds the process logger from a level name and an optional
// log file path. The returned closers own any file opened here; close them
// after the last log record.
func SetupLogger(levelName, file string) (*slog.Logger, []io.Closer, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(levelName)}

	if file == "" {
		return slog.New(routedHandler{
			split: slog.LevelError,
			low:   slog.NewTextHandler(os.Stdout, opts),
			high:  slog.NewTextHandler(os.Stderr, opts),
		}), nil, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	// With a file in play the console collapses to stderr, keeping stdout
	// free for command output.
	return slog.New(fanoutHandler{
		slog.NewTextHandler(os.Stderr, opts),
		slog.NewTextHandler(f, opts),
	}), []io.Closer{f}, nil
}
