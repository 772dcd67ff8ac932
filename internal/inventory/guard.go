package inventory

import (
	"context"
	"sync"
)

// Guard enforces at most one concurrent mutating operation per slot.
// Callers acquire exclusive access keyed by SlotKey, perform their
// seat-map reads and writes, and release on every exit path.
// Operations on different slots never block each other.
//
// A waiter gives up when its context is cancelled or times out; the
// current holder is never aborted, so a critical section always runs
// to completion and the guard is always released by whoever holds it.
type Guard struct {
	mu    sync.Mutex
	slots map[SlotKey]*slotGuard
}

type slotGuard struct {
	sem  chan struct{} // capacity 1; holding the token means holding the slot
	refs int           // holders plus waiters, for table cleanup
}

// NewGuard returns an empty guard table.
func NewGuard() *Guard {
	return &Guard{slots: make(map[SlotKey]*slotGuard)}
}

// Acquire blocks until exclusive access to the slot is obtained or ctx
// is done.  On success it returns a release function that must be
// called exactly once; releasing is safe from any goroutine.  On
// context cancellation the waiter unregisters itself and ctx.Err() is
// returned.
func (g *Guard) Acquire(ctx context.Context, key SlotKey) (release func(), err error) {
	g.mu.Lock()
	sg, ok := g.slots[key]
	if !ok {
		sg = &slotGuard{sem: make(chan struct{}, 1)}
		g.slots[key] = sg
	}
	sg.refs++
	g.mu.Unlock()

	select {
	case sg.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-sg.sem
				g.unref(key, sg)
			})
		}, nil
	case <-ctx.Done():
		g.unref(key, sg)
		return nil, ctx.Err()
	}
}

// unref drops one reference and removes the table entry once nobody
// holds or waits on it, keeping the table bounded by live slots.
func (g *Guard) unref(key SlotKey, sg *slotGuard) {
	g.mu.Lock()
	sg.refs--
	if sg.refs == 0 {
		delete(g.slots, key)
	}
	g.mu.Unlock()
}
