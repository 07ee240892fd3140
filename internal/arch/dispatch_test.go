package arch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func spawnInto(ctx context.Context, category Category, policy Policy, out **task) func() *task {
	return func() *task {
		*out = newTask(ctx, category, policy)
		return *out
	}
}

func TestDispatchTableSkipRefusesWhileRunning(t *testing.T) {
	d := newDispatchTable()
	var first, second *task

	got, prev, state := d.start(catRefresh, Skip, spawnInto(t.Context(), catRefresh, Skip, &first))
	require.Equal(t, Running, state)
	require.Same(t, first, got)
	require.Nil(t, prev)

	got, _, state = d.start(catRefresh, Skip, spawnInto(t.Context(), catRefresh, Skip, &second))
	require.Equal(t, Refused, state)
	require.Nil(t, got)
	require.Nil(t, second, "spawn must not run for a refused action")
	require.NoError(t, first.ctx.Err())

	require.True(t, d.complete(first))
	require.False(t, d.running(catRefresh))

	_, _, state = d.start(catRefresh, Skip, spawnInto(t.Context(), catRefresh, Skip, &second))
	require.Equal(t, Running, state)
}

func TestDispatchTableCancelAndStartNew(t *testing.T) {
	d := newDispatchTable()
	var first, second *task

	d.start(catSearch, CancelAndStartNew, spawnInto(t.Context(), catSearch, CancelAndStartNew, &first))
	_, prev, state := d.start(catSearch, CancelAndStartNew, spawnInto(t.Context(), catSearch, CancelAndStartNew, &second))

	require.Equal(t, Running, state)
	require.Same(t, first, prev)
	require.True(t, first.stopped.Load())
	require.ErrorIs(t, first.ctx.Err(), context.Canceled)
	require.False(t, second.stopped.Load())
	require.Same(t, second, d.tasks[catSearch])
}

func TestDispatchTableStaleCompletionIgnored(t *testing.T) {
	d := newDispatchTable()
	var first, second *task

	d.start(catSearch, CancelAndStartNew, spawnInto(t.Context(), catSearch, CancelAndStartNew, &first))
	d.start(catSearch, CancelAndStartNew, spawnInto(t.Context(), catSearch, CancelAndStartNew, &second))

	require.False(t, d.complete(first))
	require.True(t, d.running(catSearch))
	require.True(t, d.complete(second))
	require.False(t, d.running(catSearch))
}

func TestDispatchTableEnqueueIsUntracked(t *testing.T) {
	d := newDispatchTable()
	var first, second *task

	_, _, s1 := d.start(catLog, Enqueue, spawnInto(t.Context(), catLog, Enqueue, &first))
	_, prev, s2 := d.start(catLog, Enqueue, spawnInto(t.Context(), catLog, Enqueue, &second))

	require.Equal(t, Running, s1)
	require.Equal(t, Running, s2)
	require.Nil(t, prev)
	require.False(t, d.running(catLog))
	require.NoError(t, first.ctx.Err())
	require.NoError(t, second.ctx.Err())
}

func TestDispatchTableCancelAllClosesTable(t *testing.T) {
	d := newDispatchTable()
	var a, b, c *task

	d.start(catSearch, CancelAndStartNew, spawnInto(t.Context(), catSearch, CancelAndStartNew, &a))
	d.start(catRefresh, Skip, spawnInto(t.Context(), catRefresh, Skip, &b))

	stopped := d.cancelAll()
	require.Len(t, stopped, 2)
	require.True(t, a.stopped.Load())
	require.True(t, b.stopped.Load())
	require.Empty(t, d.tasks)

	_, _, state := d.start(catLog, Enqueue, spawnInto(t.Context(), catLog, Enqueue, &c))
	require.Equal(t, Refused, state)
	require.Nil(t, c)
}

func TestTaskStateString(t *testing.T) {
	for state, want := range map[TaskState]string{
		Idle: "idle", Running: "running", Completed: "completed",
		Canceled: "canceled", Refused: "refused", TaskState(99): "unknown",
	} {
		require.Equal(t, want, state.String())
	}
}
