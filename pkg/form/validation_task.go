package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/task"
)

// validation runs the validators of one field against a fixed set of values.
// Every method runs on exec.
type validation struct {
	key            string
	values         Values
	validator      Validator
	asyncValidator AsyncValidator
	existing       ValidationState
	preserveError  bool
	meta           func() Meta
	onUpdate       func(ValidationState)
	onCancel       func()

	exec   *async.Executor
	ctx    context.Context
	tracer trace.Tracer
	logger *slog.Logger

	span      trace.Span
	started   time.Time
	abort     context.CancelFunc
	cancelled bool
}

func (v *validation) task() *task.Task {
	return task.New(v.key, v.run, v.cancel)
}

func (v *validation) run(t *task.Task) {
	if v.validator == nil && v.asyncValidator == nil {
		t.Finish(true)
		return
	}

	// The form invalidates a field whenever its value changes, so a checked
	// state here was computed for the current value.
	if v.existing.Checked {
		t.Finish(v.existing.Error == nil)
		return
	}

	ctx, span := v.tracer.Start(v.ctx, "form.validate",
		trace.WithAttributes(attribute.String("form.field", v.key)))
	v.span = span
	v.started = time.Now()

	if v.validator != nil {
		err := callValidator(v.validator, v.values, v.meta())
		v.onUpdate(ValidationState{Checked: true, Error: err})
		if err != nil {
			v.end(err)
			t.Finish(false)
			return
		}
	}

	if v.asyncValidator == nil {
		v.end(nil)
		t.Finish(true)
		return
	}

	// In preserve mode the last known error stays visible while validating,
	// unless the synchronous validator just passed.
	pending := ValidationState{Validating: true}
	if v.preserveError && v.validator == nil {
		pending.Error = v.existing.Error
	}
	v.onUpdate(pending)

	ctx, v.abort = context.WithCancel(ctx)
	meta := v.meta()
	fn := v.asyncValidator
	future := async.Async(ctx, v.values, func(ctx context.Context, values Values) (struct{}, error) {
		return struct{}{}, fn(ctx, values, meta)
	})
	future.Then(func(_ struct{}, err error) {
		v.exec.Spawn(func() { v.settle(t, err) })
	})
}

func (v *validation) settle(t *task.Task, err error) {
	// A cancelled run already had its state reset; a late result must not
	// overwrite a newer validation.
	if v.cancelled {
		return
	}
	v.abort()

	err = normalize(err)
	if errors.Is(err, async.ErrPanic) {
		err = fmt.Errorf("%w: %w", ErrValidatorPanicked, err)
	}

	v.onUpdate(ValidationState{Checked: true, Error: err})
	v.end(err)
	t.Finish(err == nil)
}

func (v *validation) cancel() {
	v.cancelled = true
	if v.abort != nil {
		v.abort()
	}
	if v.span != nil {
		v.span.SetStatus(codes.Error, "cancelled")
		v.span.End()
		v.span = nil
		v.logger.Debug("validation cancelled", logger.Field(v.key))
	}
	v.onCancel()
}

func (v *validation) end(err error) {
	if v.span == nil {
		return
	}
	if err != nil {
		v.span.RecordError(err)
		v.span.SetStatus(codes.Error, err.Error())
	}
	v.span.End()
	v.span = nil

	v.logger.Debug("validation finished",
		logger.Field(v.key),
		slog.Bool("valid", err == nil),
		logger.Duration(time.Since(v.started)),
		logger.Error(err),
	)
}

// callValidator invokes fn and turns a panic into an error wrapping
// ErrValidatorPanicked.
func callValidator(fn Validator, values Values, meta Meta) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrValidatorPanicked, rerr)
				return
			}
			err = fmt.Errorf("%w: %v", ErrValidatorPanicked, r)
		}
	}()
	return normalize(fn(values, meta))
}

// normalize maps a typed nil stored in the error interface to nil.
func normalize(err error) error {
	if err == nil {
		return nil
	}
	rv := reflect.ValueOf(err)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		if rv.IsNil() {
			return nil
		}
	}
	return err
}
