package logging

import (
	"context"
	"log/slog"
	"time"
)

// ContextProvider computes attributes at the moment a record is handled.
type ContextProvider func() []slog.Attr

// Elapsed reports the run time of the current magcot invocation, rounded to
// milliseconds.
func Elapsed(start time.Time) ContextProvider {
	return func() []slog.Attr {
		return []slog.Attr{slog.Duration("elapsed", time.Since(start).Round(time.Millisecond))}
	}
}

// ContextHandler appends the attributes of its providers to every record
// before passing it on.
type ContextHandler struct {
	inner     slog.Handler
	providers []ContextProvider
}

// NewContextHandler wraps inner. Nil providers are skipped.
func NewContextHandler(inner slog.Handler, providers ...ContextProvider) *ContextHandler {
	h := &ContextHandler{inner: inner}
	for _, p := range providers {
		if p != nil {
			h.providers = append(h.providers, p)
		}
	}
	return h
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, p := range h.providers {
		r.AddAttrs(p()...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.wrap(h.inner.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.wrap(h.inner.WithGroup(name))
}

func (h *ContextHandler) wrap(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner, providers: h.providers}
}
