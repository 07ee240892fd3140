package arch

import (
	"context"
	"sync"
)

// Cell holds the latest state and pushes it to watchers.
type Cell[S any] struct {
	mu       sync.Mutex
	value    S
	watchers map[chan S]struct{}
	closed   bool
	done     chan struct{}
}

func NewCell[S any](initial S) *Cell[S] {
	return &Cell[S]{
		value:    initial,
		watchers: make(map[chan S]struct{}),
		done:     make(chan struct{}),
	}
}

func (c *Cell[S]) Get() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *Cell[S]) Set(v S) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	for box := range c.watchers {
		offer(box, v)
	}
}

// Watch returns a channel that yields the current value immediately and
// then the latest value after each change. Intermediate values are skipped
// when the reader is slower than the writer.
func (c *Cell[S]) Watch(ctx context.Context) <-chan S {
	box := make(chan S, 1)

	c.mu.Lock()
	offer(box, c.value)
	if c.closed {
		c.mu.Unlock()
		close(box)
		return box
	}
	c.watchers[box] = struct{}{}
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-c.done:
		}
		c.unwatch(box)
	}()
	return box
}

func (c *Cell[S]) unwatch(box chan S) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.watchers[box]; ok {
		delete(c.watchers, box)
		close(box)
	}
}

func (c *Cell[S]) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for box := range c.watchers {
		delete(c.watchers, box)
		close(box)
	}
	close(c.done)
}
