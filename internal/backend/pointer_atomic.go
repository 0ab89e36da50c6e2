//go:build !tailqueue_mutexfallback

package backend

import "sync/atomic"

// Pointer is a lock-free atomic pointer-to-T, the pointer counterpart of
// Int64. Used for the head/tail links of tailqueue.Queue and for the
// ring links of ringqueue.Queue.
type Pointer[T any] struct {
	v atomic.Pointer[T]
}

func (p *Pointer[T]) Load() *T {
	return p.v.Load()
}

func (p *Pointer[T]) Store(v *T) {
	p.v.Store(v)
}

func (p *Pointer[T]) CompareAndSwap(old, new *T) bool {
	return p.v.CompareAndSwap(old, new)
}

func (p *Pointer[T]) Swap(new *T) *T {
	return p.v.Swap(new)
}
