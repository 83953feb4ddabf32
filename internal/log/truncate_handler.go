package log

import (
	"context"
	"io"
	"log/slog"
)

// DefaultMaxAttrLen is the default cap on string attribute length.
// 256 characters keeps full URLs readable while cutting page text
// fragments down to a useful preview.
const DefaultMaxAttrLen = 256

// TruncatingHandler wraps an slog.Handler and truncates long string
// attribute values before passing records on.
//
// Design decision: a handler wrapper rather than call-site discipline
// because:
//  1. It integrates with standard slog APIs unchanged
//  2. It works with any underlying handler (text, JSON)
//  3. Call sites can log whole values without worrying about size
type TruncatingHandler struct {
	// handler is the underlying slog handler receiving trimmed records.
	handler slog.Handler

	// maxLen is the maximum length of a string attribute value.
	maxLen int
}

// NewTruncatingHandler creates a TruncatingHandler wrapping the given
// handler. If handler is nil, slog.Default().Handler() is used. A
// maxLen of zero or less means DefaultMaxAttrLen.
func NewTruncatingHandler(handler slog.Handler, maxLen int) *TruncatingHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxAttrLen
	}
	return &TruncatingHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
func (h *TruncatingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle truncates the record's attributes and delegates to the
// underlying handler.
func (h *TruncatingHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added,
// truncated first.
func (h *TruncatingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmed[i] = h.truncateAttr(a)
	}
	return &TruncatingHandler{handler: h.handler.WithAttrs(trimmed), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncatingHandler) WithGroup(name string) slog.Handler {
	return &TruncatingHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr truncates a single attribute, recursively handling groups.
func (h *TruncatingHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmed := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmed[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmed...)}
	}

	if a.Value.Kind() == slog.KindString {
		s := a.Value.String()
		if len(s) > h.maxLen {
			return slog.String(a.Key, s[:h.maxLen]+"...")
		}
	}
	return a
}

// NewLogger creates a text-format slog.Logger writing to w.
// Level is Debug when verbose, Warn otherwise, matching the CLI's
// --verbose flag semantics.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewTruncatingHandler(newTextHandler(w, verbose), 0))
}

// NewJSONLogger creates a JSON-format slog.Logger writing to w.
// Useful when log output is collected by structured log tooling.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncatingHandler(handler, 0))
}

func newTextHandler(w io.Writer, verbose bool) slog.Handler {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}
