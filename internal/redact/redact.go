// Package redact provides a slog.Handler decorator that masks the values of
// personally identifying attributes before they reach the wrapped handler.
// Log consumers downstream (files, aggregators) never see the raw values.
package redact

import (
	"context"
	"log/slog"
)

// Redaction replaces the value of every masked attribute.
const Redaction = "***"

// DefaultFields is the attribute-key set masked when NewHandler is given no
// explicit fields. Password hashes and session ids are never logged in the
// first place; this set covers PII that may legitimately appear in log calls.
var DefaultFields = []string{"name", "email", "phone", "ssn", "password"}

// Handler wraps another slog.Handler and rewrites attributes whose keys are
// in its field set, replacing their values with Redaction. Group attributes
// are masked recursively. All other behavior is delegated to the inner
// handler.
type Handler struct {
	inner  slog.Handler
	fields map[string]bool
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler wraps inner, masking the given attribute keys. With no keys it
// masks DefaultFields.
func NewHandler(inner slog.Handler, fields ...string) *Handler {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return &Handler{inner: inner, fields: set}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	masked := slog.NewRecord(rec.Time, rec.Level, rec.Message, rec.PC)
	rec.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.mask(a))
		return true
	})
	return h.inner.Handle(ctx, masked)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = h.mask(a)
	}
	return &Handler{inner: h.inner.WithAttrs(masked), fields: h.fields}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{inner: h.inner.WithGroup(name), fields: h.fields}
}

func (h *Handler) mask(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, ga := range group {
			masked[i] = h.mask(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}
	if h.fields[a.Key] {
		return slog.String(a.Key, Redaction)
	}
	return a
}
