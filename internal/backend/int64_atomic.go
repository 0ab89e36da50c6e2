//go:build !tailqueue_mutexfallback

package backend

import "sync/atomic"

// Int64 is a lock-free signed 64-bit cell. This is the tier (a) backend:
// Go's standard atomics.
type Int64 struct {
	v atomic.Int64
}

func (c *Int64) Load() int64 {
	return c.v.Load()
}

func (c *Int64) Store(n int64) {
	c.v.Store(n)
}

// Add adds delta to the cell and returns the new value, acq-rel ordered.
func (c *Int64) Add(delta int64) int64 {
	return c.v.Add(delta)
}

func (c *Int64) CompareAndSwap(old, new int64) bool {
	return c.v.CompareAndSwap(old, new)
}

func (c *Int64) Swap(new int64) int64 {
	return c.v.Swap(new)
}

// IsMutexFallback reports whether this build selected the mutex-guarded
// backend. Exposed so callers (tests, diagnostics) can assert on the
// selected tier without a build-tag-specific test file of their own.
const IsMutexFallback = false
