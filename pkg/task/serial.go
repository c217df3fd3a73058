package task

import "github.com/dmitrymomot/formkit/pkg/async"

// Serial runs the tasks of a batch one after another, in order, stopping at
// the first unsuccessful task.
type Serial struct {
	exec       *async.Executor
	queue      []*Task
	current    *Task
	unsub      func()
	onAll      func(success bool)
	generation uint64
}

// NewSerial creates a serial scheduler. Advancing to the next task is posted
// to exec instead of happening inside the completion handler.
func NewSerial(exec *async.Executor) *Serial {
	if exec == nil {
		exec = async.NewExecutor()
	}
	return &Serial{exec: exec}
}

// AddTasks replaces the queue with tasks and starts the first one. onAll fires
// with true once every task succeeded, or with false as soon as one fails; the
// remaining tasks are then discarded without being started. A batch still in
// progress is cancelled first.
func (s *Serial) AddTasks(tasks []*Task, onAll func(success bool)) {
	s.CancelAllTasks()
	s.queue = append([]*Task(nil), tasks...)
	s.onAll = onAll
	s.next()
}

// CancelAllTasks clears the queue and cancels the running task. No completion
// callback fires.
func (s *Serial) CancelAllTasks() {
	s.generation++
	s.queue = nil
	s.onAll = nil

	current := s.current
	s.current = nil
	if current != nil {
		s.unsub()
		current.Cancel()
	}
}

// Pending reports whether the batch has not reported completion yet.
func (s *Serial) Pending() bool {
	return s.current != nil || len(s.queue) > 0 || s.onAll != nil
}

func (s *Serial) next() {
	if s.current != nil {
		return
	}

	if len(s.queue) == 0 {
		s.complete(true)
		return
	}

	t := s.queue[0]
	s.current = t
	s.unsub = t.Subscribe(s.handle)
	t.Start()
}

func (s *Serial) handle(st State) {
	if st.Status != StatusCompleted {
		return
	}

	s.unsub()
	s.current = nil

	if !st.Success {
		s.queue = nil
		s.complete(false)
		return
	}

	s.queue = s.queue[1:]
	gen := s.generation
	s.exec.Spawn(func() {
		if gen != s.generation {
			return
		}
		s.next()
	})
}

func (s *Serial) complete(success bool) {
	onAll := s.onAll
	s.onAll = nil
	if onAll != nil {
		onAll(success)
	}
}
