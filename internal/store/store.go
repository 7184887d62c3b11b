// Package store keeps per-entity in-memory collections consistent with
// server state. Collections only change at explicit reconciliation
// points: a successful Load replaces the whole list, a confirmed
// mutation edits it after the server said yes. Nothing mutates
// mid-flight, so the rendering layer can read snapshots at any time.
package store

import (
	"errors"
	"sync"
)

// ErrBusy rejects a mutating call while a previous mutation on the same
// store is still in flight. No network call happens.
var ErrBusy = errors.New("another operation is still in progress")

// ConfirmFunc asks the user to approve a destructive action. Returning
// false makes the operation a clean no-op.
type ConfirmFunc func(prompt string) bool

// OpState tracks the lifecycle of the most recent mutation.
type OpState int

const (
	OpNone OpState = iota
	OpPending
	OpCommitted
	OpRolledBack
)

func (s OpState) String() string {
	switch s {
	case OpPending:
		return "pending"
	case OpCommitted:
		return "committed"
	case OpRolledBack:
		return "rolled back"
	default:
		return "none"
	}
}

// inflight is the busy guard shared by every mutating store operation.
type inflight struct {
	mu   sync.Mutex
	busy bool
	last OpState
}

// begin claims the guard. It fails with ErrBusy when a mutation is
// already pending.
func (g *inflight) begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return ErrBusy
	}
	g.busy = true
	g.last = OpPending
	return nil
}

// end releases the guard, recording whether the mutation committed.
func (g *inflight) end(committed bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false
	if committed {
		g.last = OpCommitted
	} else {
		g.last = OpRolledBack
	}
}

// abort releases the guard for a mutation that never started (declined
// confirmation, local validation failure).
func (g *inflight) abort() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false
	g.last = OpRolledBack
}

func (g *inflight) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

func (g *inflight) LastOp() OpState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// collection is a mutex-guarded list read by the UI via snapshots.
type collection[T any] struct {
	mu    sync.RWMutex
	items []T
}

func (c *collection[T]) replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

// snapshot returns a copy; callers may range freely while the store moves on.
func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *collection[T]) find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if pred(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) removeWhere(pred func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, it := range c.items {
		if !pred(it) {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// updateWhere edits matching items in place, preserving order and identity.
func (c *collection[T]) updateWhere(pred func(T) bool, edit func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if pred(c.items[i]) {
			edit(&c.items[i])
		}
	}
}
