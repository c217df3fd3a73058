package async

import (
	"context"
	"fmt"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// Then registers fn to be called with the settled result from a separate goroutine.
// Callers that need the callback on a specific thread of execution should hop
// onto it from fn, e.g. with Executor.Spawn.
func (f *Future[U]) Then(fn func(U, error)) {
	go func() {
		res, err := f.Await()
		fn(res, err)
	}()
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type T, and returns (U, error).
// A panic inside fn settles the future with an error wrapping ErrPanic instead of
// crashing the process.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Early exit prevents running work nobody is waiting for
		select {
		case <-ctx.Done():
			f.once.Do(func() {
				f.err = ctx.Err()
			})
			return
		default:
		}

		res, err := call(ctx, param, fn)

		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

func call[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) (res U, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrPanic, rerr)
				return
			}
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx, param)
}
