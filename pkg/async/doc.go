// Package async provides small, generic helpers for running computations
// asynchronously and for joining their results back onto a single thread of
// execution.
//
// # Futures
//
// Async starts the supplied function in its own goroutine and immediately
// returns a *Future. The caller can wait for completion with Await or
// register a callback with Then.
//
// All helpers are context-aware: if the provided context is cancelled before
// the computation starts, the Future is completed with the context error
// without calling the function. Panics inside the function settle the future
// with an error wrapping ErrPanic.
//
// # Executor
//
// An Executor is a single-threaded FIFO runner fed from any number of
// goroutines. It has no goroutine of its own: whoever spawns work on an idle
// executor runs it (and everything queued meanwhile) inline. This gives the
// run-to-completion semantics of an event loop, where a function spawned from
// inside a running function is deferred until the current one returns.
//
//	exec := async.NewExecutor()
//	counter := 0
//
//	fut := async.Async(ctx, 21, func(_ context.Context, v int) (int, error) {
//	    return v * 2, nil
//	})
//	fut.Then(func(v int, err error) {
//	    exec.Spawn(func() { counter += v }) // serialized with every other Spawn
//	})
//
// # Error Handling
//
// Functions return the error produced by the user callback, ctx.Err() for
// pre-cancelled contexts, or an ErrPanic wrapper for recovered panics.
package async
