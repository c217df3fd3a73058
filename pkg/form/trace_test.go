package form_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, form.Option) {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return rec, form.WithTracer(tp.Tracer("form-test"))
}

func attr(s sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range s.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing(t *testing.T) {
	t.Parallel()

	t.Run("validation span", func(t *testing.T) {
		rec, withTracer := newRecorder(t)
		f := newForm(form.Values{"email": ""}, withTracer, form.WithValidator("email", required("email")))

		f.RunValidation("email")

		spans := rec.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "form.validate", spans[0].Name())
		field, ok := attr(spans[0], "form.field")
		require.True(t, ok)
		assert.Equal(t, "email", field.AsString())
		assert.Equal(t, codes.Error, spans[0].Status().Code)
	})

	t.Run("cached result does not start a span", func(t *testing.T) {
		rec, withTracer := newRecorder(t)
		f := newForm(form.Values{"email": "a"}, withTracer, form.WithValidator("email", required("email")))

		f.RunValidation("email")
		f.RunValidation("email")
		assert.Len(t, rec.Ended(), 1)
	})

	t.Run("cancelled validation ends its span", func(t *testing.T) {
		rec, withTracer := newRecorder(t)
		release := make(chan struct{})
		defer close(release)

		f := newForm(form.Values{"email": "a"}, withTracer,
			form.WithAsyncValidator("email", func(context.Context, form.Values, form.Meta) error {
				<-release
				return nil
			}),
		)

		f.RunValidation("email")
		require.Empty(t, rec.Ended())
		f.Update("email", "b")

		spans := rec.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "cancelled", spans[0].Status().Description)
	})

	t.Run("submit span", func(t *testing.T) {
		rec, withTracer := newRecorder(t)
		f := newForm(form.Values{"a": ""}, withTracer,
			form.WithAsyncSubmit(func(context.Context, form.Values, form.Meta, form.Values) error {
				return errors.New("rejected")
			}),
		)

		f.Update("a", "x")
		f.Submit()
		wait(t, f)

		spans := rec.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "form.submit", spans[0].Name())
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		modified, ok := attr(spans[0], "form.modified_fields")
		require.True(t, ok)
		assert.Equal(t, int64(1), modified.AsInt64())
	})
}
