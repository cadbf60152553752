package executor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/sfegridgo/internal/task"
)

func TestPoolRun_AllTasksComplete(t *testing.T) {
	t.Parallel()

	tasks := task.Grid()
	var calls atomic.Int64

	pool := New(8)
	outcomes := pool.Run(context.Background(), tasks, func(ctx context.Context, tk task.Task) (*task.Report, error) {
		calls.Add(1)
		return &task.Report{Task: tk, NAtoms: 864}, nil
	})

	require.Len(t, outcomes, len(tasks))
	assert.Equal(t, int64(len(tasks)), calls.Load())

	for i, o := range outcomes {
		require.False(t, o.Failed(), "task %s", o.Task.Key())
		// Outcomes must come back in task order regardless of scheduling.
		assert.Equal(t, tasks[i].Key(), o.Task.Key())
		assert.Equal(t, tasks[i].Key(), o.Report.Task.Key())
	}
}

func TestPoolRun_FailureIsolation(t *testing.T) {
	t.Parallel()

	tasks := task.Grid()
	boom := errors.New("boom")
	failKey := tasks[5].Key()

	pool := New(4)
	outcomes := pool.Run(context.Background(), tasks, func(ctx context.Context, tk task.Task) (*task.Report, error) {
		if tk.Key() == failKey {
			return nil, boom
		}
		return &task.Report{Task: tk}, nil
	})

	failed := 0
	for _, o := range outcomes {
		if o.Failed() {
			failed++
			assert.Equal(t, failKey, o.Task.Key())
			assert.ErrorIs(t, o.Err, boom)
		}
	}
	assert.Equal(t, 1, failed, "one failure must not abort sibling tasks")
}

func TestPoolRun_CancelledContextSkipsTasks(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := task.Grid()[:6]
	pool := New(2)
	outcomes := pool.Run(ctx, tasks, func(ctx context.Context, tk task.Task) (*task.Report, error) {
		t.Errorf("task %s must not run after cancellation", tk.Key())
		return nil, nil
	})

	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}

func TestNew_ClampsWorkerCount(t *testing.T) {
	t.Parallel()

	pool := New(0)
	outcomes := pool.Run(context.Background(), task.Grid()[:3], func(ctx context.Context, tk task.Task) (*task.Report, error) {
		return &task.Report{Task: tk}, nil
	})
	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.False(t, o.Failed())
	}
}
