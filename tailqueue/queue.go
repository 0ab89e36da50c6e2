package tailqueue

import (
	"golang.org/x/sys/cpu"

	"github.com/gsingh-ds/go-atomic-tailqueue/atomiccell"
	"github.com/gsingh-ds/go-atomic-tailqueue/internal/backend"
)

// Node is an internal tail queue element. It is reachable only while
// linked into a Queue; the item it carries is opaque to the queue.
type Node[T any] struct {
	item T
	next backend.Pointer[Node[T]]
}

// Queue is a FIFO of opaque items with concurrent enqueue at the tail
// and dequeue at the head. The zero value is not usable; build one with
// New or NewPaired.
type Queue[T any] struct {
	_         cpu.CacheLinePad
	head      backend.Pointer[Node[T]]
	_         cpu.CacheLinePad
	tail      backend.Pointer[Node[T]]
	_         cpu.CacheLinePad
	count     *atomiccell.Cell
	allocated *atomiccell.Cell
	group     *atomiccell.Group
}

// New returns an empty, lock-free queue.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		count:     atomiccell.New(),
		allocated: atomiccell.New(),
	}
	dummy := &Node[T]{}
	q.head.Store(dummy)
	q.tail.Store(dummy)
	q.allocated.Inc()
	return q
}

// NewPaired returns an empty queue whose element count and whose
// Enqueue, Dequeue and InsertHead mutations share g's section with every
// other cell or queue paired against the same group, letting a caller
// make compound updates across several of them atomic by wrapping them
// in g.Do. Take and Splice do not enter the section.
func NewPaired[T any](g *atomiccell.Group) *Queue[T] {
	q := New[T]()
	q.group = g
	q.count = atomiccell.NewPaired(g)
	allocated := atomiccell.NewPaired(g)
	allocated.Store(q.allocated.Load())
	q.allocated = allocated
	return q
}

// Destroy removes every remaining node from the queue, leaving it
// poisoned (head and tail nil); further operations are a caller error
// and are not diagnosed. freeItems is accepted for contract parity with
// the original C destroy(queue, free_elems); a Go queue holds no
// unmanaged resources of its own to release, so use
// DestroyWithFinalizer when items need a destructor run.
//
// Destroy must not race with any other operation on q; the caller
// provides external quiescence.
func (q *Queue[T]) Destroy(freeItems bool) {
	if freeItems {
		q.DestroyWithFinalizer(func(T) {})
		return
	}
	q.DestroyWithFinalizer(nil)
}

// DestroyWithFinalizer is Destroy, additionally invoking finalize (if
// non-nil) once per remaining item, in FIFO order, before poisoning the
// queue.
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

// Enqueue appends item at the tail and returns q. Wait-free modulo a
// bounded number of CAS retries per concurrent producer collision.
func (q *Queue[T]) Enqueue(item T) *Queue[T] {
	node := &Node[T]{item: item}
	if q.group != nil {
		q.group.Do(func() { q.enqueueNode(node) })
	} else {
		q.enqueueNode(node)
	}
	return q
}

func (q *Queue[T]) enqueueNode(node *Node[T]) {
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next == nil {
			if tail.next.CompareAndSwap(nil, node) {
				q.tail.CompareAndSwap(tail, node)
				break
			}
		} else {
			// A concurrent enqueuer published but hasn't advanced tail yet; help it.
			q.tail.CompareAndSwap(tail, next)
		}
	}
	q.incCount()
	q.incAllocated()
}

// Dequeue removes and returns the head item, or returns ok == false if
// the queue was empty (leaving it unchanged). Wait-free modulo a bounded
// number of CAS retries.
func (q *Queue[T]) Dequeue() (item T, ok bool) {
	if q.group != nil {
		q.group.Do(func() { item, ok = q.dequeueNode() })
		return
	}
	return q.dequeueNode()
}

func (q *Queue[T]) dequeueNode() (item T, ok bool) {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}
		if head == tail {
			if next == nil {
				var zero T
				return zero, false
			}
			// Tail is lagging behind a published node; help it catch up.
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		item = next.item
		if q.head.CompareAndSwap(head, next) {
			q.decCount()
			return item, true
		}
	}
}

// InsertHead prepends item at the head, ahead of every item already in
// the queue, preserving the count invariant. Useful for urgent items or
// putback.
func (q *Queue[T]) InsertHead(item T) *Queue[T] {
	node := &Node[T]{}
	if q.group != nil {
		q.group.Do(func() { q.insertHeadNode(node, item) })
	} else {
		q.insertHeadNode(node, item)
	}
	return q
}

func (q *Queue[T]) insertHeadNode(node *Node[T], item T) {
	node.item = item
	for {
		head := q.head.Load()
		oldNext := head.next.Load()
		node.next.Store(oldNext)
		if !head.next.CompareAndSwap(oldNext, node) {
			continue
		}
		if head != q.head.Load() {
			// head was dequeued past us while we linked in; our node is now
			// hanging off an unreachable dummy. Retry against the live head.
			continue
		}
		if oldNext == nil {
			q.tail.CompareAndSwap(head, node)
		}
		break
	}
	q.incCount()
	q.incAllocated()
}

// EnqueueLocked is Enqueue for a paired queue whose group section the
// caller already holds (via Group.Do). Calling it on an unpaired queue,
// or without holding the section, is a caller error.
func (q *Queue[T]) EnqueueLocked(item T) *Queue[T] {
	q.mustBePaired()
	q.enqueueNode(&Node[T]{item: item})
	return q
}

// DequeueLocked is Dequeue for a paired queue whose group section the
// caller already holds.
func (q *Queue[T]) DequeueLocked() (item T, ok bool) {
	q.mustBePaired()
	return q.dequeueNode()
}

// InsertHeadLocked is InsertHead for a paired queue whose group section
// the caller already holds.
func (q *Queue[T]) InsertHeadLocked(item T) *Queue[T] {
	q.mustBePaired()
	q.insertHeadNode(&Node[T]{}, item)
	return q
}

func (q *Queue[T]) mustBePaired() {
	if q.group == nil {
		panic("tailqueue: *Locked method called on an unpaired queue")
	}
}

// incCount, decCount and incAllocated are called from enqueueNode,
// dequeueNode and insertHeadNode, which on a paired queue always run
// with the group's section already held (either Enqueue/Dequeue/
// InsertHead entered it themselves, or the caller holds it via
// Group.Do and an *Locked method). They must use the *Locked cell
// accessors in that case: the plain ones would try to re-acquire the
// same non-reentrant section and deadlock.
func (q *Queue[T]) incCount() {
	if q.group != nil {
		q.count.IncLocked()
		return
	}
	q.count.Inc()
}

func (q *Queue[T]) decCount() {
	if q.group != nil {
		q.count.DecLocked()
		return
	}
	q.count.Dec()
}

func (q *Queue[T]) incAllocated() {
	if q.group != nil {
		q.allocated.IncLocked()
		return
	}
	q.allocated.Inc()
}

// Len returns the current element count.
func (q *Queue[T]) Len() int64 {
	return q.count.Load()
}

// Allocated returns the total number of nodes linked into the queue:
// its initial dummy node, one per Enqueue or InsertHead, and the item
// nodes moved in by Take or Splice. Dequeued nodes stay counted, so it
// never decreases; the replacement dummy nodes that Take and Splice
// install are not counted. Mirrors the
// original's separate atomic allocated-nodes counter
// (sim_tailq_allocated), kept distinct from the live element count.
func (q *Queue[T]) Allocated() int64 {
	return q.allocated.Load()
}

// Iterate performs a best-effort, non-linearizable traversal of the
// queue's current contents in FIFO order, calling fn for each item until
// fn returns false or the queue is exhausted. It is intended for
// diagnostics and tests; it must not run concurrently with Destroy. On a
// destroyed queue it visits nothing.
func (q *Queue[T]) Iterate(fn func(item T) bool) {
	head := q.head.Load()
	if head == nil {
		return
	}
	n := head.next.Load()
	for n != nil {
		if !fn(n.item) {
			return
		}
		n = n.next.Load()
	}
}

// Take atomically moves the entire contents of src onto dst, which is
// reset to empty first; src becomes empty afterward. The transfer is a
// single publish point from src's perspective; it is not jointly
// linearizable with concurrent producers on either queue.
func Take[T any](src, dst *Queue[T]) {
	dst.head.Store(&Node[T]{})
	dst.tail.Store(dst.head.Load())
	dst.count.Store(0)
	spliceChain(dst, src)
}

// Splice concatenates from's contents onto onto's tail; from becomes
// empty. onto's count increases by from's prior count. The relative
// order of all items is preserved; interleaving order with concurrent
// producers on onto is unspecified beyond per-producer FIFO.
func Splice[T any](onto, from *Queue[T]) {
	spliceChain(onto, from)
}

func spliceChain[T any](onto, from *Queue[T]) {
	for {
		fromHead := from.head.Load()
		fromTail := from.tail.Load()
		firstReal := fromHead.next.Load()
		n := from.count.Load()

		newDummy := &Node[T]{}
		if !from.head.CompareAndSwap(fromHead, newDummy) {
			continue
		}
		from.tail.Store(newDummy)
		from.count.Add(-n)

		if firstReal == nil {
			return
		}

		ontoTail := onto.tail.Load()
		ontoTail.next.Store(firstReal)
		onto.tail.Store(fromTail)
		onto.count.Add(n)
		onto.allocated.Add(n)
		return
	}
}
