package bridge

import "sync"

type listenerSet struct {
	mu      sync.Mutex
	nextID  uint64
	entries []listenerEntry
}

type listenerEntry struct {
	id uint64
	fn Listener
}

func (l *listenerSet) add(fn Listener) func() {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()

			for i, entry := range l.entries {
				if entry.id == id {
					l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
					return
				}
			}
		})
	}
}

// notify calls the listeners registered when it starts, in order.
func (l *listenerSet) notify(view View) {
	l.mu.Lock()
	entries := make([]listenerEntry, len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	for _, entry := range entries {
		entry.fn(view)
	}
}
