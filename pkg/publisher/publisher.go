package publisher

import "sync"

// Listener receives published events.
type Listener[T any] func(event T)

type entry[T any] struct {
	id       uint64
	listener Listener[T]
}

// Publisher broadcasts events of type T to its listeners synchronously.
// The zero value is not usable, create instances with New.
type Publisher[T any] struct {
	mu        sync.RWMutex
	listeners []entry[T]
	nextID    uint64
}

// New creates an empty publisher.
func New[T any]() *Publisher[T] {
	return &Publisher[T]{}
}

// Subscribe registers a listener and returns a function that removes it.
// The returned function is idempotent. Nil listeners are ignored.
func (p *Publisher[T]) Subscribe(l Listener[T]) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.listeners = append(p.listeners, entry[T]{id: id, listener: l})
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { p.remove(id) })
	}
}

// Publish invokes every listener with event, in subscription order.
func (p *Publisher[T]) Publish(event T) {
	p.mu.RLock()
	// Copy so listeners can (un)subscribe without deadlocking on mu.
	snapshot := make([]entry[T], len(p.listeners))
	copy(snapshot, p.listeners)
	p.mu.RUnlock()

	for _, e := range snapshot {
		e.listener(event)
	}
}

func (p *Publisher[T]) remove(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, e := range p.listeners {
		if e.id == id {
			p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
			return
		}
	}
}
