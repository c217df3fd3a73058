package async

import "sync"

// Executor runs functions one at a time, in the order they were spawned,
// regardless of which goroutine spawned them.
//
// There is no dedicated worker goroutine. The first caller that finds the
// executor idle becomes the runner and keeps draining the queue until it is
// empty; every Spawn that arrives meanwhile (including reentrant ones made
// from inside a running function) is queued behind it. State that is only
// touched from functions run by the same Executor needs no further locking.
type Executor struct {
	mu        sync.Mutex
	queue     []func()
	running   bool
	onDrained func()
}

// NewExecutor creates an idle executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Spawn schedules fn. If the executor is idle fn runs before Spawn returns,
// followed by anything queued while it ran. Otherwise fn is queued and Spawn
// returns immediately.
func (e *Executor) Spawn(fn func()) {
	if fn == nil {
		return
	}

	e.mu.Lock()
	e.queue = append(e.queue, fn)
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.drain()
}

// OnDrained sets fn to run on the executor whenever its queue empties, before
// it goes idle. Functions fn spawns run before the executor goes idle, after
// which fn runs again. Set it before the first Spawn.
func (e *Executor) OnDrained(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onDrained = fn
}

func (e *Executor) drain() {
	// A panicking function must not leave the executor stuck in running state.
	defer func() {
		if r := recover(); r != nil {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			panic(r)
		}
	}()

	hooked := false
	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			if e.onDrained != nil && !hooked {
				hooked = true
				hook := e.onDrained
				e.mu.Unlock()
				hook()
				continue
			}
			e.running = false
			e.mu.Unlock()
			return
		}
		hooked = false
		next := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.mu.Unlock()

		next()
	}
}
