package logging

import (
	"context"
	"errors"
	"log/slog"
)

// NewMultiHandler returns a handler that fans records out to every given
// handler, so stdout JSON and the database sink can run side by side. A
// record is delivered to each handler whose level admits it.
func NewMultiHandler(handlers ...slog.Handler) slog.Handler {
	return multiHandler(handlers)
}

type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range m {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.clone(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	return m.clone(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m multiHandler) clone(wrap func(slog.Handler) slog.Handler) slog.Handler {
	out := make(multiHandler, len(m))
	for i, h := range m {
		out[i] = wrap(h)
	}
	return out
}
