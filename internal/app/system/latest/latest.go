// Package latest discards responses that a newer request for the same
// widget has superseded.
//
// Each request takes a ticket for its key (session plus widget). When its
// fetch completes, the handler checks the ticket is still the newest; if
// not, the result is dropped instead of overwriting fresher content.
package latest

import "sync"

// Tracker hands out tickets. Ticket numbers increase across all keys, so a
// forgotten key never reissues an old number.
type Tracker struct {
	mu   sync.Mutex
	next uint64
	seq  map[string]uint64
	want map[string]string
}

// New returns an empty Tracker.
func New() *Tracker {
	return &Tracker{
		seq:  make(map[string]uint64),
		want: make(map[string]string),
	}
}

// Ticket identifies one request.
type Ticket struct {
	t   *Tracker
	key string
	n   uint64
	sel string
}

// Begin issues a new ticket for key. selection is what the request asked for
// (the tab or filter value); it is recorded as the current selection.
func (t *Tracker) Begin(key, selection string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.seq[key] = t.next
	t.want[key] = selection
	return Ticket{t: t, key: key, n: t.seq[key], sel: selection}
}

// Current reports whether no newer ticket has been issued for the key and
// the selection still matches.
func (k Ticket) Current() bool {
	if k.t == nil {
		return true
	}
	k.t.mu.Lock()
	defer k.t.mu.Unlock()
	return k.t.seq[k.key] == k.n && k.t.want[k.key] == k.sel
}

// Done forgets the key once the newest ticket has been served, keeping the
// maps bounded by the number of requests in flight.
func (k Ticket) Done() {
	if k.t == nil {
		return
	}
	k.t.mu.Lock()
	defer k.t.mu.Unlock()
	if k.t.seq[k.key] == k.n {
		delete(k.t.seq, k.key)
		delete(k.t.want, k.key)
	}
}
