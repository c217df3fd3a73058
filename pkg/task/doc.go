// Package task provides cancellable units of asynchronous work and the two
// policies used to schedule batches of them.
//
// A Task moves through idle → running → completed and publishes every
// transition to its subscribers. What the work is does not matter to the
// task: the work function receives the task and must eventually call Finish.
// A task whose work never finishes stays running forever.
//
// Parallel starts every task of a batch at once and reports success only when
// all of them completed successfully. Serial runs a batch strictly in order,
// stops at the first unsuccessful task and reports failure immediately.
//
// Neither scheduler uses locks. Tasks, schedulers and the callbacks they
// invoke are expected to be driven from one logical thread, typically an
// async.Executor; work that completes on another goroutine must hop back onto
// that executor before calling Finish.
//
// # Usage
//
//	exec := async.NewExecutor()
//	serial := task.NewSerial(exec)
//
//	exec.Spawn(func() {
//	    serial.AddTasks([]*task.Task{first, second}, func(success bool) {
//	        fmt.Println("batch finished:", success)
//	    })
//	})
package task
