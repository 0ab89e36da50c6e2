package ringqueue

import (
	"golang.org/x/sys/cpu"

	"github.com/gsingh-ds/go-atomic-tailqueue/atomiccell"
	"github.com/gsingh-ds/go-atomic-tailqueue/internal/backend"
)

const (
	statusReady int64 = 0
	statusBusy  int64 = 1
)

// node is one slot in the ring. Its status gates when a consumer may
// read item: READY means the slot is stable (either still holding its
// last published item, or freshly initialized and empty); BUSY means a
// producer is mid-write.
type node[T any] struct {
	item   T
	status backend.Int64
	next   backend.Pointer[node[T]]
}

// Queue is a circular, preallocated ring of nodes: head and tail are
// node pointers into the ring, empty iff head == tail. The ring grows
// by splicing in a new node whenever tail's successor would overtake
// head. Grounded on original_source/sim_tailq.c (tailq_add_node,
// advance_head, advance_tail, sim_tailq_enqueue_xform).
type Queue[T any] struct {
	_         cpu.CacheLinePad
	head      backend.Pointer[node[T]]
	_         cpu.CacheLinePad
	tail      backend.Pointer[node[T]]
	_         cpu.CacheLinePad
	count     *atomiccell.Cell
	allocated *atomiccell.Cell
}

// New returns an empty ring queue preallocated with initialNodes slots
// (minimum 1).
func New[T any](initialNodes int) *Queue[T] {
	if initialNodes < 1 {
		initialNodes = 1
	}

	first := &node[T]{}
	first.status.Store(statusReady)
	prev := first
	for i := 1; i < initialNodes; i++ {
		n := &node[T]{}
		n.status.Store(statusReady)
		prev.next.Store(n)
		prev = n
	}
	prev.next.Store(first)

	q := &Queue[T]{
		count:     atomiccell.New(),
		allocated: atomiccell.New(),
	}
	q.head.Store(first)
	q.tail.Store(first)
	q.allocated.Store(int64(initialNodes))
	return q
}

// Enqueue reserves the next slot and publishes item into it.
func (q *Queue[T]) Enqueue(item T) {
	q.EnqueueTransform(func(T) T { return item })
}

// EnqueueTransform reserves the next slot, marks it BUSY, invokes
// xform with the slot's previous item (the ring's oldest recycled
// value, or the zero value the first time a slot is used) to produce
// the new item, writes it into the slot, then marks the slot READY.
// xform must not dequeue from this queue.
func (q *Queue[T]) EnqueueTransform(xform func(prev T) T) {
	elem := q.advanceTail()
	elem.status.Store(statusBusy)
	elem.item = xform(elem.item)
	elem.status.Store(statusReady)
	q.count.Inc()
}

// Dequeue removes and returns the head item, or returns ok == false if
// the queue was empty. A consumer spins on a reserved-but-not-yet-
// published slot until the producer marks it READY.
func (q *Queue[T]) Dequeue() (item T, ok bool) {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if head == tail {
			var zero T
			return zero, false
		}
		next := head.next.Load()
		if q.head.CompareAndSwap(head, next) {
			for head.status.Load() != statusReady {
				// Spin until the producer that reserved this slot publishes.
			}
			item = head.item
			q.count.Dec()
			return item, true
		}
	}
}

func (q *Queue[T]) advanceTail() *node[T] {
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if next == q.head.Load() {
			q.growRing(tail)
			continue
		}
		// Claim the slot BUSY before moving tail past it, so a consumer
		// that sees the reservation spins until the producer publishes.
		if !tail.status.CompareAndSwap(statusReady, statusBusy) {
			continue
		}
		if q.tail.CompareAndSwap(tail, next) {
			return tail
		}
		tail.status.Store(statusReady)
	}
}

func (q *Queue[T]) growRing(tail *node[T]) {
	for {
		next := tail.next.Load()
		if next != q.head.Load() {
			return // another producer already grew the ring.
		}
		n := &node[T]{}
		n.status.Store(statusReady)
		n.next.Store(next)
		if tail.next.CompareAndSwap(next, n) {
			q.allocated.Inc()
			return
		}
	}
}

// Len returns the current element count.
func (q *Queue[T]) Len() int64 {
	return q.count.Load()
}

// Allocated returns the total number of ring slots, growing over time
// but never decreasing.
func (q *Queue[T]) Allocated() int64 {
	return q.allocated.Load()
}

// Iterate performs a best-effort, non-linearizable traversal of the
// queue's current contents in FIFO order. It never dereferences freed
// memory: the ring only recycles nodes, it never frees them.
func (q *Queue[T]) Iterate(fn func(item T) bool) {
	head := q.head.Load()
	tail := q.tail.Load()
	for head != tail {
		for head.status.Load() != statusReady {
		}
		if !fn(head.item) {
			return
		}
		head = head.next.Load()
	}
}

// Destroy poisons the queue; further use is a caller error.
func (q *Queue[T]) Destroy(freeItems bool) {
	if freeItems {
		q.DestroyWithFinalizer(func(T) {})
		return
	}
	q.DestroyWithFinalizer(nil)
}

// DestroyWithFinalizer is Destroy, additionally invoking finalize (if
// non-nil) once per remaining item, in FIFO order, before poisoning.
func (q *Queue[T]) DestroyWithFinalizer(finalize func(item T)) {
	if finalize != nil {
		q.Iterate(func(item T) bool {
			finalize(item)
			return true
		})
	}
	q.head.Store(nil)
	q.tail.Store(nil)
	q.count.Store(0)
}
