package form

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/publisher"
	"github.com/dmitrymomot/formkit/pkg/task"
)

const tracerName = "github.com/dmitrymomot/formkit/pkg/form"

type batchQueue interface {
	AddTasks(tasks []*task.Task, onAll func(success bool))
	CancelAllTasks()
	Pending() bool
}

// Form tracks the values, validation, modification and submission state of
// one form and publishes a Snapshot after every change.
//
// All state changes are applied one at a time on the form's executor. A
// method called while the form is idle applies its change, and publishes,
// before it returns. A method called while the form is busy, for example from
// inside a listener or while an asynchronous validator result is being
// applied on another goroutine, is queued and applied once the current work
// finishes.
type Form struct {
	id     string
	exec   *async.Executor
	events *publisher.Publisher[*Snapshot]

	keys            []string
	validators      map[string]Validator
	asyncValidators map[string]AsyncValidator
	comparators     map[string]Comparator
	onSubmit        SubmitFunc
	onAsyncSubmit   AsyncSubmitFunc
	config          Config

	ctx    context.Context
	logger *slog.Logger
	tracer trace.Tracer

	fieldQueue  *task.Parallel
	submitQueue batchQueue

	initial       Values
	values        Values
	validations   Validations
	modifications Modifications
	meta          Meta
	submitting    int

	actions  Actions
	snapshot atomic.Pointer[Snapshot]
	waiters  []chan struct{}
}

// New creates a form whose fields are the keys of initial.
func New(initial Values, opts ...Option) *Form {
	o := &options{
		validators:      make(map[string]Validator),
		asyncValidators: make(map[string]AsyncValidator),
		comparators:     make(map[string]Comparator),
		meta:            Meta{},
		config:          DefaultConfig(),
		ctx:             context.Background(),
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}

	id := uuid.NewString()
	f := &Form{
		id:              id,
		exec:            async.NewExecutor(),
		events:          publisher.New[*Snapshot](),
		keys:            fieldOrder(initial, o.order),
		validators:      o.validators,
		asyncValidators: o.asyncValidators,
		comparators:     o.comparators,
		onSubmit:        o.onSubmit,
		onAsyncSubmit:   o.onAsyncSubmit,
		config:          o.config,
		ctx:             logger.ContextWithFormID(o.ctx, id),
		logger:          o.logger.With(logger.Component("form"), logger.FormID(id)),
		tracer:          o.tracer,
		fieldQueue:      task.NewParallel(),
		initial:         initial.Clone(),
		meta:            o.meta,
	}
	f.exec.OnDrained(f.notifyIdle)
	if f.config.ValidateConcurrentlyOnSubmit {
		f.submitQueue = task.NewParallel()
	} else {
		f.submitQueue = task.NewSerial(f.exec)
	}

	for _, key := range unknownKeys(f.initial, o.validators, o.asyncValidators, o.comparators) {
		f.logger.Warn("option refers to unknown field", logger.Field(key))
	}

	f.values = f.initial.Clone()
	f.validations = f.initialValidations()
	f.modifications = f.initialModifications()
	f.actions = Actions{
		Update:        f.Update,
		RunValidation: f.RunValidation,
		Submit:        f.Submit,
		Clear:         f.Clear,
	}
	f.snapshot.Store(f.buildSnapshot())

	return f
}

// ID returns the unique identifier of this form instance.
func (f *Form) ID() string {
	return f.id
}

// Fields returns the field keys in submit validation order.
func (f *Form) Fields() []string {
	return slices.Clone(f.keys)
}

// Snapshot returns the most recently published state.
func (f *Form) Snapshot() *Snapshot {
	return f.snapshot.Load()
}

// Subscribe registers a listener called with every new snapshot. Listeners
// run on the form's executor and must not block; they may call form methods,
// which are then queued.
func (f *Form) Subscribe(l func(*Snapshot)) (unsubscribe func()) {
	return f.events.Subscribe(l)
}

// Update sets the value of a field. It cancels any submit in progress and the
// field's own running validation, invalidates the field and, with
// AutoValidate, validates it again. Unknown keys are ignored.
//
// If the form is busy, for example while an asynchronous validator result is
// being applied, the update is queued and may not be visible in Snapshot when
// Update returns. Use Wait to observe it.
func (f *Form) Update(key string, value any) {
	f.exec.Spawn(func() { f.update(key, value) })
}

// RunValidation validates one field, cancelling a validation of the same
// field that is still running.
func (f *Form) RunValidation(key string) {
	f.exec.Spawn(func() { f.runValidation(key) })
}

// Submit validates every field and, if all pass, calls the submit handler
// with the current values and the modified subset. It does nothing when no
// submit handler is configured.
func (f *Form) Submit() {
	f.exec.Spawn(f.submit)
}

// Clear cancels running validations and resets the form to its initial
// values.
func (f *Form) Clear() {
	f.exec.Spawn(f.clear)
}

// SetInitial replaces the initial values. Fields the user has not modified
// adopt the new values unless a validation or submission is in flight. A nil
// map is ignored. The keys must match the form's fields.
//
// Like Update, the change is queued when the form is busy; Wait observes it.
func (f *Form) SetInitial(initial Values) error {
	if initial == nil {
		return nil
	}
	if len(initial) != len(f.keys) {
		return ErrKeySetMismatch
	}
	for _, key := range f.keys {
		if _, ok := initial[key]; !ok {
			return ErrKeySetMismatch
		}
	}

	next := initial.Clone()
	f.exec.Spawn(func() { f.setInitial(next) })
	return nil
}

// SetMeta replaces the meta passed to validators and submit handlers. A nil
// map is ignored.
func (f *Form) SetMeta(meta Meta) {
	if meta == nil {
		return
	}
	next := maps.Clone(meta)
	f.exec.Spawn(func() { f.meta = next })
}

// Wait blocks until no validation or submission is pending, or ctx is done.
// It must not be called from a listener.
func (f *Form) Wait(ctx context.Context) error {
	idle := make(chan struct{})
	f.exec.Spawn(func() { f.waiters = append(f.waiters, idle) })

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		f.exec.Spawn(func() {
			f.waiters = slices.DeleteFunc(f.waiters, func(c chan struct{}) bool { return c == idle })
		})
		return ctx.Err()
	}
}

// notifyIdle runs each time the executor drains and releases Wait callers
// once nothing is pending.
func (f *Form) notifyIdle() {
	if len(f.waiters) == 0 || f.busy() {
		return
	}
	for _, c := range f.waiters {
		close(c)
	}
	f.waiters = nil
}

func (f *Form) update(key string, value any) {
	if !f.known(key) {
		f.logger.Warn("update of unknown field ignored", logger.Field(key))
		return
	}

	// Snapshots published by the cancellations still carry the old value.
	f.submitQueue.CancelAllTasks()
	f.fieldQueue.CancelTask(key)

	next := f.values.Clone()
	next[key] = value
	f.values = next

	f.invalidate(key)
	f.setModification(key, f.isModified(key))
	f.publish()

	if f.config.AutoValidate {
		f.runValidation(key)
	}
}

func (f *Form) runValidation(key string) {
	if !f.known(key) {
		f.logger.Warn("validation of unknown field ignored", logger.Field(key))
		return
	}

	f.fieldQueue.CancelTask(key)
	if !f.hasValidator(key) {
		return
	}
	f.fieldQueue.AddTask(f.validationTask(key))
}

func (f *Form) submit() {
	if f.onSubmit == nil && f.onAsyncSubmit == nil {
		return
	}

	f.fieldQueue.CancelAllTasks()
	f.submitQueue.CancelAllTasks()

	tasks := make([]*task.Task, 0, len(f.keys))
	for _, key := range f.keys {
		if f.hasValidator(key) {
			tasks = append(tasks, f.validationTask(key))
		}
	}

	submissionID := uuid.NewString()
	f.logger.Debug("submit started",
		logger.SubmissionID(submissionID),
		slog.Int("validations", len(tasks)),
	)

	f.submitQueue.AddTasks(tasks, func(success bool) {
		if !success {
			f.logger.Debug("submit blocked by validation", logger.SubmissionID(submissionID))
			return
		}
		f.handleSubmit(submissionID)
	})
}

func (f *Form) handleSubmit(submissionID string) {
	values := f.values
	meta := f.meta
	modified := make(Values)
	for _, key := range f.keys {
		if f.modifications[key].IsModified {
			modified[key] = values[key]
		}
	}

	ctx, span := f.tracer.Start(f.ctx, "form.submit", trace.WithAttributes(
		attribute.String("form.submission_id", submissionID),
		attribute.Int("form.modified_fields", len(modified)),
	))

	if f.onSubmit != nil {
		f.onSubmit(values, meta, modified)
		span.End()
		return
	}

	f.submitting++
	f.publish()

	fn := f.onAsyncSubmit
	started := time.Now()
	future := async.Async(ctx, values, func(ctx context.Context, values Values) (struct{}, error) {
		return struct{}{}, fn(ctx, values, meta, modified)
	})
	future.Then(func(_ struct{}, err error) {
		f.exec.Spawn(func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				f.logger.Warn("submit handler failed",
					logger.SubmissionID(submissionID),
					logger.Error(err),
				)
			} else {
				f.logger.Debug("submit finished",
					logger.SubmissionID(submissionID),
					logger.Duration(time.Since(started)),
				)
			}
			span.End()

			f.submitting--
			f.publish()
		})
	})
}

func (f *Form) clear() {
	f.fieldQueue.CancelAllTasks()
	f.submitQueue.CancelAllTasks()

	f.values = f.initial.Clone()
	f.validations = f.initialValidations()
	f.modifications = f.initialModifications()
	f.publish()
}

func (f *Form) setInitial(initial Values) {
	changed := false
	for _, key := range f.keys {
		if !f.equal(key, f.initial[key], initial[key]) {
			changed = true
			break
		}
	}
	if !changed {
		return
	}

	f.initial = initial

	if !f.validations.validating() && !f.submitQueue.Pending() && f.submitting == 0 {
		next := f.values.Clone()
		var synced []string
		for _, key := range f.keys {
			if !f.modifications[key].IsModified {
				next[key] = initial[key]
				synced = append(synced, key)
			}
		}
		f.values = next
		for _, key := range synced {
			f.invalidate(key)
		}
	} else {
		f.logger.Debug("initial values adopted without syncing current values")
	}

	mods := make(Modifications, len(f.keys))
	for _, key := range f.keys {
		mods[key] = ModificationState{IsModified: f.isModified(key)}
	}
	f.modifications = mods
	f.publish()
}

func (f *Form) validationTask(key string) *task.Task {
	v := &validation{
		key:            key,
		values:         f.values,
		validator:      f.validators[key],
		asyncValidator: f.asyncValidators[key],
		existing:       f.validations[key],
		preserveError:  f.config.PreserveValidationErrorOnUpdate,
		meta:           func() Meta { return f.meta },
		onUpdate: func(s ValidationState) {
			f.setValidation(key, s)
			f.publish()
		},
		onCancel: func() {
			f.invalidate(key)
			f.publish()
		},
		exec:   f.exec,
		ctx:    f.ctx,
		tracer: f.tracer,
		logger: f.logger,
	}
	return v.task()
}

// invalidate marks a field with validators as unchecked. In preserve mode
// the previous error stays visible. Cancelled validations go through here as
// well, so cancellation and update follow the same policy.
func (f *Form) invalidate(key string) {
	if !f.hasValidator(key) {
		return
	}
	var state ValidationState
	if f.config.PreserveValidationErrorOnUpdate {
		state.Error = f.validations[key].Error
	}
	f.setValidation(key, state)
}

func (f *Form) setValidation(key string, s ValidationState) {
	next := maps.Clone(f.validations)
	next[key] = s
	f.validations = next
}

func (f *Form) setModification(key string, modified bool) {
	next := maps.Clone(f.modifications)
	next[key] = ModificationState{IsModified: modified}
	f.modifications = next
}

func (f *Form) initialValidations() Validations {
	out := make(Validations, len(f.keys))
	for _, key := range f.keys {
		out[key] = ValidationState{Checked: !f.hasValidator(key)}
	}
	return out
}

func (f *Form) initialModifications() Modifications {
	out := make(Modifications, len(f.keys))
	for _, key := range f.keys {
		out[key] = ModificationState{}
	}
	return out
}

func (f *Form) publish() {
	s := f.buildSnapshot()
	f.snapshot.Store(s)
	f.events.Publish(s)
}

func (f *Form) buildSnapshot() *Snapshot {
	return &Snapshot{
		Values:        f.values,
		Validations:   f.validations,
		Modifications: f.modifications,
		IsValid:       f.validations.valid(),
		IsValidating:  f.validations.validating(),
		IsModified:    f.modifications.modified(),
		IsSubmitting:  f.submitting > 0,
		Actions:       f.actions,
	}
}

func (f *Form) busy() bool {
	return f.fieldQueue.Pending() || f.submitQueue.Pending() || f.submitting > 0
}

func (f *Form) known(key string) bool {
	_, ok := f.initial[key]
	return ok
}

func (f *Form) hasValidator(key string) bool {
	return f.validators[key] != nil || f.asyncValidators[key] != nil
}

// fieldOrder lists the keys of initial, those named in order first.
func fieldOrder(initial Values, order []string) []string {
	keys := make([]string, 0, len(initial))
	seen := make(map[string]bool, len(initial))
	for _, key := range order {
		if _, ok := initial[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	rest := make([]string, 0, len(initial)-len(keys))
	for key := range initial {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}

func unknownKeys[A, B, C any](initial Values, a map[string]A, b map[string]B, c map[string]C) []string {
	var out []string
	check := func(key string) {
		if _, ok := initial[key]; !ok && !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	for key := range a {
		check(key)
	}
	for key := range b {
		check(key)
	}
	for key := range c {
		check(key)
	}
	slices.Sort(out)
	return out
}
