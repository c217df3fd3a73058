// Package publisher provides a minimal, type-safe, synchronous event
// broadcaster.
//
// Unlike channel based fan-out, a Publisher invokes every registered listener
// directly on the goroutine that calls Publish, in the order the listeners
// subscribed. This gives observers a totally ordered view of events that
// matches the order they were produced in, which the form engine relies on
// for its snapshot stream.
//
// Basic usage:
//
//	p := publisher.New[string]()
//
//	unsubscribe := p.Subscribe(func(msg string) {
//		fmt.Println(msg)
//	})
//	defer unsubscribe()
//
//	p.Publish("hello")
//
// Subscribe and Publish are safe for concurrent use. Listeners registered or
// removed while a Publish is in progress take effect from the next Publish.
package publisher
