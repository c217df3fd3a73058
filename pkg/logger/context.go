package logger

import (
	"context"
	"log/slog"
)

type formIDKey struct{}

// ContextWithFormID stores a form identifier in ctx so that loggers built with
// WithFormIDFromContext attach it to every record.
func ContextWithFormID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, formIDKey{}, id)
}

// FormIDFromContext returns the form identifier stored in ctx, if any.
func FormIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(formIDKey{}).(string)
	return id, ok && id != ""
}

// WithFormIDFromContext injects the form identifier carried by the logging
// context as a "form_id" attribute.
func WithFormIDFromContext() Option {
	return WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		id, ok := FormIDFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return FormID(id), true
	})
}
