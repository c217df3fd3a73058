package task

type job struct {
	task  *Task
	unsub func()
	batch *batch
}

type batch struct {
	remaining int
	success   bool
	onAll     func(success bool)
}

// Parallel starts tasks concurrently and aggregates batch completion.
type Parallel struct {
	running map[string]*job
}

// NewParallel creates an empty parallel scheduler.
func NewParallel() *Parallel {
	return &Parallel{running: make(map[string]*job)}
}

// AddTask starts a single task outside of any batch.
func (p *Parallel) AddTask(t *Task) {
	p.schedule([]*Task{t}, nil)
}

// AddTasks starts every task of the batch. onAll fires exactly once, after the
// last task of the batch completed, with success set only if every task
// succeeded. An empty batch reports success immediately.
//
// Adding a batch while a previous one is still running is not supported;
// cancel first.
func (p *Parallel) AddTasks(tasks []*Task, onAll func(success bool)) {
	if len(tasks) == 0 {
		if onAll != nil {
			onAll(true)
		}
		return
	}
	p.schedule(tasks, &batch{remaining: len(tasks), success: true, onAll: onAll})
}

// CancelTask cancels and forgets the running task with the given id. The
// cancelled task no longer counts towards its batch; if it was the last one
// outstanding the batch callback is dropped rather than forced.
func (p *Parallel) CancelTask(id string) {
	j, ok := p.running[id]
	if !ok {
		return
	}
	delete(p.running, id)
	j.unsub()
	if j.batch != nil {
		j.batch.remaining--
		if j.batch.remaining == 0 {
			j.batch.onAll = nil
		}
	}
	j.task.Cancel()
}

// CancelAllTasks cancels every running task. Pending batch callbacks are
// dropped without being invoked.
func (p *Parallel) CancelAllTasks() {
	jobs := p.running
	p.running = make(map[string]*job)

	for _, j := range jobs {
		j.unsub()
		if j.batch != nil {
			j.batch.onAll = nil
		}
	}
	for _, j := range jobs {
		j.task.Cancel()
	}
}

// Pending reports whether any task is still running.
func (p *Parallel) Pending() bool {
	return len(p.running) > 0
}

func (p *Parallel) schedule(tasks []*Task, b *batch) {
	// Register everything first so a task finishing synchronously in Start
	// cannot complete the batch early.
	for _, t := range tasks {
		j := &job{task: t, batch: b}
		j.unsub = t.Subscribe(func(s State) { p.handle(j, s) })
		p.running[t.ID()] = j
	}
	for _, t := range tasks {
		t.Start()
	}
}

func (p *Parallel) handle(j *job, s State) {
	if s.Status != StatusCompleted {
		return
	}

	j.unsub()
	if cur, ok := p.running[s.ID]; ok && cur == j {
		delete(p.running, s.ID)
	}

	b := j.batch
	if b == nil {
		return
	}
	b.success = b.success && s.Success
	b.remaining--
	if b.remaining > 0 || b.onAll == nil {
		return
	}

	onAll := b.onAll
	b.onAll = nil
	onAll(b.success)
}
