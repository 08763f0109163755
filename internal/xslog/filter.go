package xslog

import (
	"context"
	"log/slog"
	"strings"
)

var _ slog.Handler = (*FilterHandler)(nil)

type FilterFunc func(ctx context.Context, record slog.Record) bool

func NewFilterHandler(handler slog.Handler, filter FilterFunc) *FilterHandler {
	return &FilterHandler{handler: handler, filter: filter}
}

// FilterHandler drops every record its filter rejects before passing the rest on.
type FilterHandler struct {
	handler slog.Handler
	filter  FilterFunc
}

func (f *FilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return f.handler.Enabled(ctx, level)
}

func (f *FilterHandler) Handle(ctx context.Context, record slog.Record) error {
	if f.filter != nil && !f.filter(ctx, record) {
		return nil
	}
	return f.handler.Handle(ctx, record)
}

func (f *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewFilterHandler(f.handler.WithAttrs(attrs), f.filter)
}

func (f *FilterHandler) WithGroup(name string) slog.Handler {
	return NewFilterHandler(f.handler.WithGroup(name), f.filter)
}

// DropAttrPrefix rejects records that carry a string attribute key whose
// value starts with any of prefixes.
func DropAttrPrefix(key string, prefixes ...string) FilterFunc {
	return func(_ context.Context, record slog.Record) bool {
		keep := true
		record.Attrs(func(attr slog.Attr) bool {
			if attr.Key != key || attr.Value.Kind() != slog.KindString {
				return true
			}
			for _, prefix := range prefixes {
				if strings.HasPrefix(attr.Value.String(), prefix) {
					keep = false
					return false
				}
			}
			return true
		})
		return keep
	}
}
