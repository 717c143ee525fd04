package logger

import (
	"context"
	"log/slog"

	"github.com/probekit/probekit/annotate"
)

// annotatedErrorHandler is a slog.Handler decorator. When a log record carries
// an error attribute built with annotate.WithAttrs, the handler replaces the
// attribute's value with the underlying cause and promotes the embedded
// attributes onto the record, so the context attached at the error site shows
// up in the log line.
//
// All actual output is delegated to the wrapped handler.
type annotatedErrorHandler struct {
	inner slog.Handler
}

var _ slog.Handler = (*annotatedErrorHandler)(nil)

// NewAnnotatedErrorHandler wraps inner with annotated-error extraction.
func NewAnnotatedErrorHandler(inner slog.Handler) slog.Handler {
	return &annotatedErrorHandler{inner: inner}
}

// Enabled delegates to the wrapped handler.
func (h *annotatedErrorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle rewrites error attributes that carry embedded slog attributes, then
// delegates to the wrapped handler.
func (h *annotatedErrorHandler) Handle(ctx context.Context, record slog.Record) error {
	var (
		rewritten bool
		attrs     []slog.Attr
	)

	record.Attrs(func(attr slog.Attr) bool {
		err, ok := attr.Value.Any().(error)
		if !ok {
			attrs = append(attrs, attr)

			return true
		}

		cause, embedded, found := annotate.Split(err)
		if !found {
			attrs = append(attrs, attr)

			return true
		}

		rewritten = true

		attrs = append(attrs, slog.Attr{Key: attr.Key, Value: slog.AnyValue(cause)})
		attrs = append(attrs, embedded...)

		return true
	})

	if !rewritten {
		return h.inner.Handle(ctx, record)
	}

	out := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	out.AddAttrs(attrs...)

	return h.inner.Handle(ctx, out)
}

// WithAttrs returns a new decorated handler whose wrapped handler carries the
// given attributes.
func (h *annotatedErrorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &annotatedErrorHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a new decorated handler whose wrapped handler opens the
// given group.
func (h *annotatedErrorHandler) WithGroup(name string) slog.Handler {
	return &annotatedErrorHandler{inner: h.inner.WithGroup(name)}
}
