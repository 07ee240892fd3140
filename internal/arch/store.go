package arch

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	logger *log.Logger
	policy any
}

// WithLogger sets the logger used for task lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPolicy overrides DefaultPolicy. The action type must match the
// store's action type.
func WithPolicy[A Action](fn func(A) Policy) Option {
	return func(o *options) { o.policy = PolicyFunc[A](fn) }
}

type envelope[R any] struct {
	task   *task
	result R
	done   bool
}

// Store is the state container. Create it with New and release it with
// Close.
type Store[A Action, R, S, E any] struct {
	interactor Interactor[A, R]
	reduce     Reducer[S, R, E]
	policy     PolicyFunc[A]
	logger     *log.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	state   *Cell[S]
	effects *Effects[E]
	table   *dispatchTable
	results chan envelope[R]

	producers sync.WaitGroup
	foldDone  chan struct{}
	closeOnce sync.Once
}

// New builds a store publishing initial and starts the interactor's initial
// result stream. The store stops when ctx is done or Close is called.
func New[A Action, R, S, E any](ctx context.Context, interactor Interactor[A, R], reduce Reducer[S, R, E], initial S, opts ...Option) *Store[A, R, S, E] {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	policy := PolicyFunc[A](DefaultPolicy[A])
	if o.policy != nil {
		fn, ok := o.policy.(PolicyFunc[A])
		if !ok {
			panic(fmt.Sprintf("arch: policy %T does not match action type", o.policy))
		}
		policy = fn
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Store[A, R, S, E]{
		interactor: interactor,
		reduce:     reduce,
		policy:     policy,
		logger:     o.logger,
		ctx:        ctx,
		cancel:     cancel,
		state:      NewCell(initial),
		effects:    NewEffects[E](),
		table:      newDispatchTable(),
		results:    make(chan envelope[R]),
		foldDone:   make(chan struct{}),
	}

	go s.fold()
	s.producers.Add(1)
	go s.runInit()
	return s
}

// State returns the most recently folded state.
func (s *Store[A, R, S, E]) State() S { return s.state.Get() }

// Watch observes the state. See Cell.Watch.
func (s *Store[A, R, S, E]) Watch(ctx context.Context) <-chan S { return s.state.Watch(ctx) }

// Effects returns the effect channel.
func (s *Store[A, R, S, E]) Effects() *Effects[E] { return s.effects }

// Running reports whether a tracked task of category is in flight.
func (s *Store[A, R, S, E]) Running(category Category) bool { return s.table.running(category) }

// Dispatch admits action according to its policy and starts its result
// sequence. It returns immediately; refusals are silent.
func (s *Store[A, R, S, E]) Dispatch(action A) {
	if s.ctx.Err() != nil {
		return
	}
	category := action.Category()
	policy := s.policy(action)

	t, prev, state := s.table.start(category, policy, func() *task {
		s.producers.Add(1)
		return newTask(s.ctx, category, policy)
	})
	if state == Refused {
		s.logger.Printf("arch: %s refused (%s)", category, policy)
		return
	}
	if prev != nil {
		s.logger.Printf("arch: task %s (%s) %s", prev.id, category, Canceled)
	}
	s.logger.Printf("arch: task %s (%s) %s", t.id, category, Running)
	go s.runTask(t, action)
}

// Close cancels all work, waits for producers to return and closes every
// watcher and subscriber. It is safe to call more than once.
func (s *Store[A, R, S, E]) Close() {
	s.closeOnce.Do(func() {
		for _, t := range s.table.cancelAll() {
			s.logger.Printf("arch: task %s (%s) %s", t.id, t.category, Canceled)
		}
		s.cancel()
		s.producers.Wait()
		<-s.foldDone
		s.state.close()
		s.effects.close()
	})
}

// fold is the only goroutine that calls the reducer or writes the state.
func (s *Store[A, R, S, E]) fold() {
	defer close(s.foldDone)
	for {
		select {
		case <-s.ctx.Done():
			return
		case env := <-s.results:
			if env.task != nil && env.task.stopped.Load() {
				continue
			}
			if env.done {
				if s.table.complete(env.task) {
					s.logger.Printf("arch: task %s (%s) %s", env.task.id, env.task.category, Completed)
				}
				continue
			}
			s.state.Set(s.reduce(s.state.Get(), env.result, s.effects))
		}
	}
}

func (s *Store[A, R, S, E]) runInit() {
	defer s.producers.Done()
	for r := range s.interactor.InitResults(s.ctx) {
		if !s.forward(s.ctx, envelope[R]{result: r}) {
			return
		}
	}
}

func (s *Store[A, R, S, E]) runTask(t *task, action A) {
	defer s.producers.Done()
	defer t.cancel()

	for r := range s.interactor.ActionToResult(t.ctx, action) {
		if !s.forward(t.ctx, envelope[R]{task: t, result: r}) {
			break
		}
	}
	if t.ctx.Err() != nil {
		return
	}
	if t.policy == Enqueue {
		s.logger.Printf("arch: task %s (%s) %s", t.id, t.category, Completed)
		return
	}
	// The marker follows the task's results through the pipeline, so the
	// category stays busy until its last result has been folded.
	s.forward(s.ctx, envelope[R]{task: t, done: true})
}

// forward hands env to the fold goroutine unless ctx ends first.
func (s *Store[A, R, S, E]) forward(ctx context.Context, env envelope[R]) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case s.results <- env:
		return true
	case <-ctx.Done():
		return false
	}
}
