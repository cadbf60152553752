// Package executor runs the structure-generation task grid on a fixed
// pool of workers. The tasks are fully independent, with no shared
// mutable state and no ordering constraints, so the pool needs no dependency
// tracking: one task's failure is recorded and its siblings keep running.
// Context cancellation only stops workers from picking up new tasks.
package executor

import (
	"context"
	"sync"

	"github.com/vk/sfegridgo/internal/task"
)

// Func is the per-task pipeline the pool executes: lattice parameters,
// supercell build, site assignment, structure write.
type Func func(ctx context.Context, t task.Task) (*task.Report, error)

// Outcome is the terminal state of one task: a report on success, the
// task-scoped error otherwise.
type Outcome struct {
	Task   task.Task
	Report *task.Report
	Err    error
}

// Failed reports whether the task ended in an error (including being
// skipped by cancellation).
func (o Outcome) Failed() bool { return o.Err != nil }

// Pool is a fixed-size worker pool over an enumerable task list.
type Pool struct {
	workers int
}

// New returns a pool running at most workers tasks concurrently. A
// non-positive count falls back to 1.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes fn for every task and returns the outcomes in task order.
// The outcome order is independent of scheduling; only the wall-clock
// interleaving varies between runs.
func (p *Pool) Run(ctx context.Context, tasks []task.Task, fn Func) []Outcome {
	outcomes := make([]Outcome, len(tasks))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.worker(ctx, workerID, tasks, indexes, outcomes, fn)
		}(w)
	}

	// Feed task indexes; each worker writes only its own outcome slot, so
	// the slice needs no locking.
	for i := range tasks {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return outcomes
}
