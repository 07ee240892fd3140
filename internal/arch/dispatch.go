package arch

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// TaskState is the lifecycle of one admission attempt.
type TaskState int

const (
	Idle TaskState = iota
	Running
	Completed
	Canceled
	Refused
)

func (s TaskState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Canceled:
		return "canceled"
	case Refused:
		return "refused"
	default:
		return "unknown"
	}
}

// task is one in-flight ActionToResult invocation.
type task struct {
	id       string
	category Category
	policy   Policy
	ctx      context.Context
	cancel   context.CancelFunc
	stopped  atomic.Bool
}

func newTask(parent context.Context, category Category, policy Policy) *task {
	ctx, cancel := context.WithCancel(parent)
	return &task{
		id:       uuid.NewString(),
		category: category,
		policy:   policy,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// stop marks the task so queued results are dropped, then cancels it.
func (t *task) stop() {
	t.stopped.Store(true)
	t.cancel()
}

// dispatchTable tracks the running task per category.
type dispatchTable struct {
	mu     sync.Mutex
	tasks  map[Category]*task
	closed bool
}

func newDispatchTable() *dispatchTable {
	return &dispatchTable{tasks: make(map[Category]*task)}
}

// admit reports whether a new action may start. Caller holds mu.
func (d *dispatchTable) admit(category Category, policy Policy) bool {
	if d.closed {
		return false
	}
	if policy == Skip {
		_, busy := d.tasks[category]
		return !busy
	}
	return true
}

// preempt stops and forgets the registered task under CancelAndStartNew.
// Caller holds mu.
func (d *dispatchTable) preempt(category Category, policy Policy) *task {
	if policy != CancelAndStartNew {
		return nil
	}
	prev, ok := d.tasks[category]
	if !ok {
		return nil
	}
	prev.stop()
	delete(d.tasks, category)
	return prev
}

// register records t unless it was admitted with Enqueue. Caller holds mu.
func (d *dispatchTable) register(category Category, t *task, policy Policy) {
	if policy == Enqueue {
		return
	}
	d.tasks[category] = t
}

// start runs admit, preempt and register as one step. spawn is called with
// mu held and only when the action is admitted. The preempted task, if any,
// is returned so the caller can log it.
func (d *dispatchTable) start(category Category, policy Policy, spawn func() *task) (*task, *task, TaskState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.admit(category, policy) {
		return nil, nil, Refused
	}
	prev := d.preempt(category, policy)
	t := spawn()
	d.register(category, t, policy)
	return t, prev, Running
}

// complete forgets t if it is still the task on record for its category.
// A completion that lost the race against a newer registration is ignored.
func (d *dispatchTable) complete(t *task) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cur, ok := d.tasks[t.category]; ok && cur == t {
		delete(d.tasks, t.category)
		return true
	}
	return false
}

// cancelAll stops every tracked task and refuses later admissions.
func (d *dispatchTable) cancelAll() []*task {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	stopped := make([]*task, 0, len(d.tasks))
	for category, t := range d.tasks {
		t.stop()
		delete(d.tasks, category)
		stopped = append(stopped, t)
	}
	return stopped
}

func (d *dispatchTable) running(category Category) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.tasks[category]
	return ok
}
