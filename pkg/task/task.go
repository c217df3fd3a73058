package task

import "github.com/dmitrymomot/formkit/pkg/publisher"

// Status is a lifecycle phase of a Task.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// State is published on every transition of a Task.
type State struct {
	ID      string
	Status  Status
	Success bool
}

// Task is a cancellable unit of work with an observable lifecycle.
type Task struct {
	id       string
	work     func(*Task)
	onCancel func()
	state    State
	events   *publisher.Publisher[State]
}

// New creates an idle task. work is invoked by Start and must eventually call
// Finish; onCancel is invoked by Cancel. Either may be nil.
func New(id string, work func(*Task), onCancel func()) *Task {
	return &Task{
		id:       id,
		work:     work,
		onCancel: onCancel,
		state:    State{ID: id, Status: StatusIdle},
		events:   publisher.New[State](),
	}
}

// ID returns the task identifier.
func (t *Task) ID() string {
	return t.id
}

// State returns the current state.
func (t *Task) State() State {
	return t.state
}

// Subscribe registers a listener for state transitions.
func (t *Task) Subscribe(l func(State)) (unsubscribe func()) {
	return t.events.Subscribe(l)
}

// Start transitions the task to running and invokes its work synchronously.
func (t *Task) Start() {
	t.dispatch(State{ID: t.id, Status: StatusRunning})
	if t.work != nil {
		t.work(t)
	}
}

// Finish completes the task. Calls after the task has completed are ignored.
func (t *Task) Finish(success bool) {
	if t.state.Status == StatusCompleted {
		return
	}
	t.dispatch(State{ID: t.id, Status: StatusCompleted, Success: success})
}

// Cancel invokes onCancel and completes the task unsuccessfully. onCancel
// fires even when the task has already completed; the state is left alone in
// that case.
func (t *Task) Cancel() {
	if t.onCancel != nil {
		t.onCancel()
	}
	t.Finish(false)
}

func (t *Task) dispatch(s State) {
	t.state = s
	t.events.Publish(s)
}
