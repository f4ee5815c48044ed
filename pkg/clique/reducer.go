package clique

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Reducer accumulates the single largest clique offered across all trials.
// It is the only shared mutable state in a search.
//
// Offer uses a two-step discipline: a lock-free read of the current best
// size filters out candidates that cannot improve, and only potential
// improvements take the mutex, where the size is re-checked because several
// trials may pass the fast path simultaneously. The critical section is a
// size re-check and a slice swap, so contention stays negligible even with
// thousands of trials feeding a handful of workers.
//
// The zero value is ready to use.
type Reducer struct {
	size atomic.Int64
	mu   sync.Mutex
	best []int
}

// Offer submits a candidate clique and reports whether it replaced the
// stored best. Only strictly larger candidates replace; ties keep the
// first-found result, so which equal-sized clique wins depends on trial
// completion order.
//
// The reducer takes ownership of candidate on improvement - callers must
// not reuse the slice after a true return.
func (r *Reducer) Offer(candidate []int) bool {
	if int64(len(candidate)) <= r.size.Load() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(candidate) <= len(r.best) {
		return false
	}
	r.best = candidate
	r.size.Store(int64(len(candidate)))
	return true
}

// Size returns the size of the best clique seen so far.
// Safe to call concurrently with Offer; the value is monotonically
// non-decreasing over the lifetime of the reducer.
func (r *Reducer) Size() int {
	return int(r.size.Load())
}

// Best returns a copy of the best clique seen so far, or nil if nothing
// has been offered yet.
func (r *Reducer) Best() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.best)
}
