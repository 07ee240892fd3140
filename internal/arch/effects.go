package arch

import (
	"context"
	"sync"
)

// Effects broadcasts one-shot notifications.
//
// An effect emitted while nobody listens is kept (latest only) and handed
// to the next subscriber, once. Each subscriber has a single-slot mailbox:
// a subscriber that falls behind sees the newest effect and misses older
// ones.
type Effects[E any] struct {
	mu      sync.Mutex
	subs    map[chan E]context.Context
	pending *E
	closed  bool
	done    chan struct{}
}

func NewEffects[E any]() *Effects[E] {
	return &Effects[E]{
		subs: make(map[chan E]context.Context),
		done: make(chan struct{}),
	}
}

// Emit publishes effect to every active subscriber. It never blocks.
// Subscribers whose context has ended are dropped first and do not count
// as listening.
func (f *Effects[E]) Emit(effect E) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	for box, ctx := range f.subs {
		if ctx.Err() != nil {
			delete(f.subs, box)
			close(box)
		}
	}
	if len(f.subs) == 0 {
		f.pending = &effect
		return
	}
	for box := range f.subs {
		offer(box, effect)
	}
}

// Subscribe returns a channel of effects emitted from now on, preceded by
// the undelivered effect if there is one. The channel is closed when ctx
// ends or the effect channel is closed.
func (f *Effects[E]) Subscribe(ctx context.Context) <-chan E {
	box := make(chan E, 1)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		close(box)
		return box
	}
	if f.pending != nil {
		offer(box, *f.pending)
		f.pending = nil
	}
	f.subs[box] = ctx
	f.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-f.done:
		}
		f.unsubscribe(box)
	}()
	return box
}

func (f *Effects[E]) unsubscribe(box chan E) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.subs[box]; ok {
		delete(f.subs, box)
		close(box)
	}
}

func (f *Effects[E]) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.pending = nil
	for box := range f.subs {
		delete(f.subs, box)
		close(box)
	}
	close(f.done)
}
