// Package sections tracks which page sections have finished mounting.
// Heavy sections load lazily, so a scroll target may not exist yet when
// navigation lands; waiters block on an explicit readiness signal
// instead of rechecking on an interval.
package sections

import (
	"context"
	"sync"
	"time"
)

// DefaultWait bounds how long a scroll request waits for its target.
// A section that has not mounted by then is treated as absent and the
// scroll is skipped without error.
const DefaultWait = 2500 * time.Millisecond

// waiter is shared by every goroutine waiting on one section id; the
// last one to give up removes the entry so abandoned ids do not pile
// up in the registry.
type waiter struct {
	ch chan struct{}
	n  int
}

type Registry struct {
	mu      sync.Mutex
	ready   map[string]struct{}
	waiters map[string]*waiter
}

func New() *Registry {
	return &Registry{
		ready:   make(map[string]struct{}),
		waiters: make(map[string]*waiter),
	}
}

// MarkReady records that a section has mounted and wakes every waiter.
// Marking the same section twice is harmless.
func (r *Registry) MarkReady(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ready[id]; ok {
		return
	}
	r.ready[id] = struct{}{}
	if w, ok := r.waiters[id]; ok {
		close(w.ch)
		delete(r.waiters, id)
	}
}

// Reset forgets readiness for a page swap; the next render mounts
// sections from scratch. Waiters in flight keep their channel and time
// out on their own.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = make(map[string]struct{})
}

// AwaitSection blocks until the section is ready, the wait elapses, or
// ctx is done. It reports whether the section showed up; false is not
// an error, the caller just skips the scroll.
func (r *Registry) AwaitSection(ctx context.Context, id string, wait time.Duration) bool {
	if wait <= 0 || wait > DefaultWait {
		wait = DefaultWait
	}

	r.mu.Lock()
	if _, ok := r.ready[id]; ok {
		r.mu.Unlock()
		return true
	}
	w, ok := r.waiters[id]
	if !ok {
		w = &waiter{ch: make(chan struct{})}
		r.waiters[id] = w
	}
	w.n++
	r.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-w.ch:
		return true
	case <-timer.C:
	case <-ctx.Done():
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	w.n--
	// MarkReady may have raced the timeout; honor the signal.
	select {
	case <-w.ch:
		return true
	default:
	}
	if w.n == 0 && r.waiters[id] == w {
		delete(r.waiters, id)
	}
	return false
}

// Waiting reports how many section ids currently have blocked waiters.
func (r *Registry) Waiting() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.waiters)
}
