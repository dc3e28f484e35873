// Package inflight allows at most one outstanding request per control.
//
// A control is a mutating button or form (upload, finalize, checklist
// toggle) and is keyed per session, so two operators never block each other.
package inflight

import (
	"strings"
	"sync"
)

// Guard tracks which keys are busy. The zero value is ready to use.
type Guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// New returns an empty Guard.
func New() *Guard {
	return &Guard{busy: make(map[string]struct{})}
}

// Key joins a session id and control parts into a guard key.
func Key(sessionID string, control ...string) string {
	return sessionID + "|" + strings.Join(control, "/")
}

// TryAcquire marks key busy. ok is false when key is already busy; in that
// case release is a no-op. release is safe to call more than once.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy == nil {
		g.busy = make(map[string]struct{})
	}
	if _, taken := g.busy[key]; taken {
		return func() {}, false
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, true
}

// Busy reports whether key is currently held.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.busy[key]
	return ok
}
