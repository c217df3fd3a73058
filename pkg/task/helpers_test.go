package task_test

import (
	"time"

	"github.com/dmitrymomot/formkit/pkg/async"
	"github.com/dmitrymomot/formkit/pkg/task"
)

type dummyTask struct {
	id       string
	delay    time.Duration
	success  bool
	onResult func()
	onCancel func()
}

// build creates a task that finishes after delay on exec. A zero delay
// finishes synchronously inside Start.
func (d dummyTask) build(exec *async.Executor) *task.Task {
	var timer *time.Timer
	cancelled := false

	return task.New(d.id, func(t *task.Task) {
		finish := func() {
			if cancelled {
				return
			}
			if d.onResult != nil {
				d.onResult()
			}
			t.Finish(d.success)
		}
		if d.delay == 0 {
			finish()
			return
		}
		timer = time.AfterFunc(d.delay, func() { exec.Spawn(finish) })
	}, func() {
		cancelled = true
		if timer != nil {
			timer.Stop()
		}
		if d.onCancel != nil {
			d.onCancel()
		}
	})
}

// read runs fn on exec and returns its result.
func read[T any](exec *async.Executor, fn func() T) T {
	ch := make(chan T, 1)
	exec.Spawn(func() { ch <- fn() })
	return <-ch
}
