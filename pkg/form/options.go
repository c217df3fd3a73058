package form

import (
	"context"
	"log/slog"
	"maps"

	"go.opentelemetry.io/otel/trace"
)

type options struct {
	validators      map[string]Validator
	asyncValidators map[string]AsyncValidator
	comparators     map[string]Comparator
	onSubmit        SubmitFunc
	onAsyncSubmit   AsyncSubmitFunc
	meta            Meta
	config          Config
	order           []string
	ctx             context.Context
	logger          *slog.Logger
	tracer          trace.Tracer
}

// Option configures a Form.
type Option func(*options)

// WithValidator registers the synchronous validator of a field.
func WithValidator(key string, v Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validators[key] = v
		}
	}
}

// WithValidators registers several synchronous validators at once.
func WithValidators(vs map[string]Validator) Option {
	return func(o *options) {
		for key, v := range vs {
			WithValidator(key, v)(o)
		}
	}
}

// WithAsyncValidator registers the asynchronous validator of a field. It runs
// only after the synchronous validator, if any, passed.
func WithAsyncValidator(key string, v AsyncValidator) Option {
	return func(o *options) {
		if v != nil {
			o.asyncValidators[key] = v
		}
	}
}

// WithAsyncValidators registers several asynchronous validators at once.
func WithAsyncValidators(vs map[string]AsyncValidator) Option {
	return func(o *options) {
		for key, v := range vs {
			WithAsyncValidator(key, v)(o)
		}
	}
}

// WithComparator replaces structural equality for one field when computing
// its modification state.
func WithComparator(key string, c Comparator) Option {
	return func(o *options) {
		if c != nil {
			o.comparators[key] = c
		}
	}
}

// WithSubmit sets a synchronous submit handler. It replaces any handler set
// with WithAsyncSubmit.
func WithSubmit(fn SubmitFunc) Option {
	return func(o *options) {
		o.onSubmit = fn
		o.onAsyncSubmit = nil
	}
}

// WithAsyncSubmit sets an asynchronous submit handler. It replaces any handler
// set with WithSubmit.
func WithAsyncSubmit(fn AsyncSubmitFunc) Option {
	return func(o *options) {
		o.onAsyncSubmit = fn
		o.onSubmit = nil
	}
}

// WithMeta sets the initial meta.
func WithMeta(m Meta) Option {
	return func(o *options) {
		if m != nil {
			o.meta = maps.Clone(m)
		}
	}
}

// WithConfig replaces the configuration wholesale. Options are applied in
// order, so field-level options given after it still take effect.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.config = cfg }
}

// WithAutoValidate overrides Config.AutoValidate.
func WithAutoValidate(enabled bool) Option {
	return func(o *options) { o.config.AutoValidate = enabled }
}

// WithConcurrentSubmitValidation overrides Config.ValidateConcurrentlyOnSubmit.
func WithConcurrentSubmitValidation(enabled bool) Option {
	return func(o *options) { o.config.ValidateConcurrentlyOnSubmit = enabled }
}

// WithPreserveErrorOnUpdate overrides Config.PreserveValidationErrorOnUpdate.
func WithPreserveErrorOnUpdate(enabled bool) Option {
	return func(o *options) { o.config.PreserveValidationErrorOnUpdate = enabled }
}

// WithFieldOrder sets the order in which fields are validated on submit.
// Fields not listed follow in sorted order; unknown keys are ignored.
func WithFieldOrder(keys ...string) Option {
	return func(o *options) { o.order = append([]string(nil), keys...) }
}

// WithContext sets the parent context of every validator and submit handler
// call. Cancelling it aborts in-flight asynchronous work.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracer sets the tracer used for validation and submit spans. Defaults
// to the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}
