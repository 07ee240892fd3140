package repository

import "sync"

// notifier wakes observers of a key after a write.
type notifier struct {
	mu   sync.Mutex
	subs map[int]map[chan struct{}]struct{}
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]map[chan struct{}]struct{})}
}

func (n *notifier) subscribe(key int) chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs[key] == nil {
		n.subs[key] = make(map[chan struct{}]struct{})
	}
	n.subs[key][ch] = struct{}{}
	return ch
}

func (n *notifier) unsubscribe(key int, ch chan struct{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs[key], ch)
	if len(n.subs[key]) == 0 {
		delete(n.subs, key)
	}
}

func (n *notifier) notify(key int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
