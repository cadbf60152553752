package executor

import (
	"context"

	"github.com/vk/sfegridgo/internal/ctxlog"
	"github.com/vk/sfegridgo/internal/task"
)

// worker is the processing loop for a single concurrent worker.
func (p *Pool) worker(ctx context.Context, workerID int, tasks []task.Task, indexes <-chan int, outcomes []Outcome, fn Func) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	logger.Debug("Worker started.")

	for i := range indexes {
		t := tasks[i]
		taskLogger := logger.With("task", t.Key())

		if err := ctx.Err(); err != nil {
			taskLogger.Debug("Skipping task, context cancelled.")
			outcomes[i] = Outcome{Task: t, Err: err}
			continue
		}

		taskLogger.Debug("Worker picked up task.")
		report, err := fn(ctx, t)
		if err != nil {
			taskLogger.Error("Task failed.", "error", err)
			outcomes[i] = Outcome{Task: t, Err: err}
			continue
		}

		taskLogger.Debug("Task completed.", "atoms", report.NAtoms, "path", report.Path)
		outcomes[i] = Outcome{Task: t, Report: report}
	}

	logger.Debug("Worker finished, no tasks left.")
}
