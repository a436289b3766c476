package filter

import (
	"strings"
	"sync"
)

// Location is the URL query the filter state lives in. Listeners run
// synchronously after every change, including history navigation.
type Location interface {
	Query() string
	Push(query string)
	Replace(query string)
	Listen(fn func(query string)) (unlisten func())
}

// MemoryLocation is an in-memory Location with browser-like history.
// It is safe for concurrent use.
type MemoryLocation struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners map[uint64]func(string)
	nextID    uint64
}

// NewMemoryLocation starts a history with a single entry.
func NewMemoryLocation(query string) *MemoryLocation {
	return &MemoryLocation{
		entries:   []string{canonicalQuery(query)},
		listeners: make(map[uint64]func(string)),
	}
}

func (l *MemoryLocation) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[l.index]
}

// Push adds a history entry and drops any forward entries. Pushing the
// current query is a no-op.
func (l *MemoryLocation) Push(query string) {
	query = canonicalQuery(query)

	l.mu.Lock()
	if l.entries[l.index] == query {
		l.mu.Unlock()
		return
	}
	l.entries = append(l.entries[:l.index+1], query)
	l.index++
	fns := l.listenersLocked()
	l.mu.Unlock()

	notify(fns, query)
}

// Replace overwrites the current entry.
func (l *MemoryLocation) Replace(query string) {
	query = canonicalQuery(query)

	l.mu.Lock()
	if l.entries[l.index] == query {
		l.mu.Unlock()
		return
	}
	l.entries[l.index] = query
	fns := l.listenersLocked()
	l.mu.Unlock()

	notify(fns, query)
}

// Back moves one entry back in history. It reports false at the start.
func (l *MemoryLocation) Back() bool {
	return l.Go(-1)
}

// Forward moves one entry forward. It reports false at the end.
func (l *MemoryLocation) Forward() bool {
	return l.Go(1)
}

// Go moves delta entries through history if the target exists.
func (l *MemoryLocation) Go(delta int) bool {
	l.mu.Lock()
	target := l.index + delta
	if delta == 0 || target < 0 || target >= len(l.entries) {
		l.mu.Unlock()
		return false
	}
	l.index = target
	query := l.entries[target]
	fns := l.listenersLocked()
	l.mu.Unlock()

	notify(fns, query)
	return true
}

// Len returns the number of history entries.
func (l *MemoryLocation) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *MemoryLocation) Listen(fn func(query string)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.listeners, id)
		l.mu.Unlock()
	}
}

func (l *MemoryLocation) listenersLocked() []func(string) {
	fns := make([]func(string), 0, len(l.listeners))
	for _, fn := range l.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func(string), query string) {
	for _, fn := range fns {
		fn(query)
	}
}

func canonicalQuery(q string) string {
	return strings.TrimPrefix(q, "?")
}
