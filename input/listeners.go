package input

import "sync"

// Listeners collects everything a session must undo when it ends: callback
// handles and cleanup functions such as closing the session's queues.
type Listeners struct {
	mu       sync.Mutex
	handles  []Handle
	cleanups []func()
	released bool
}

// Add records h. If the collection was already released, h is removed
// immediately. A nil *Listeners ignores the call.
func (l *Listeners) Add(h Handle) {
	if l == nil {
		return
	}
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		h.Remove()
		return
	}
	l.handles = append(l.handles, h)
	l.mu.Unlock()
}

// Defer records fn to run on RemoveAll, after every handle is removed.
// Cleanups run in reverse order of registration.
func (l *Listeners) Defer(fn func()) {
	if l == nil {
		return
	}
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		fn()
		return
	}
	l.cleanups = append(l.cleanups, fn)
	l.mu.Unlock()
}

// RemoveAll removes every recorded handle and runs the cleanups. Later
// calls do nothing.
func (l *Listeners) RemoveAll() {
	if l == nil {
		return
	}
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return
	}
	l.released = true
	handles, cleanups := l.handles, l.cleanups
	l.handles, l.cleanups = nil, nil
	l.mu.Unlock()

	for _, h := range handles {
		h.Remove()
	}
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Released reports whether RemoveAll has been called.
func (l *Listeners) Released() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.released
}
