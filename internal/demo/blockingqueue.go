// Package demo provides a worked example of coupling tailqueue with a
// condition variable to get a blocking dequeue at the application
// layer.
package demo

import (
	"sync"

	"github.com/gsingh-ds/go-atomic-tailqueue/tailqueue"
)

// BlockingQueue couples a lock-free tailqueue.Queue with a sync.Cond so
// that Pop can block the caller's goroutine on an empty queue instead of
// spinning or polling. The queue itself stays non-blocking; only this
// wrapper suspends.
type BlockingQueue[T any] struct {
	q      *tailqueue.Queue[T]
	mu     sync.Mutex
	cond   *sync.Cond
	closed bool
}

// NewBlockingQueue returns an empty, open BlockingQueue.
func NewBlockingQueue[T any]() *BlockingQueue[T] {
	b := &BlockingQueue[T]{q: tailqueue.New[T]()}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Push enqueues item and wakes one blocked consumer, if any.
func (b *BlockingQueue[T]) Push(item T) {
	b.q.Enqueue(item)
	b.mu.Lock()
	b.cond.Signal()
	b.mu.Unlock()
}

// Close marks the queue as shut down and wakes every blocked consumer.
// Consumers already holding items, or items enqueued before Close, are
// still delivered by Pop; Close only stops Pop from blocking forever
// once the queue is drained.
func (b *BlockingQueue[T]) Close() {
	b.mu.Lock()
	b.closed = true
	b.cond.Broadcast()
	b.mu.Unlock()
}

// Pop blocks until an item is available or the queue is closed and
// drained, matching S4's producer/consumer condition-variable pattern.
func (b *BlockingQueue[T]) Pop() (item T, ok bool) {
	for {
		if item, ok = b.q.Dequeue(); ok {
			return item, true
		}

		b.mu.Lock()
		// Re-check under the lock: an item (or Close) may have landed
		// between the lock-free Dequeue above and acquiring mu.
		if item, ok = b.q.Dequeue(); ok {
			b.mu.Unlock()
			return item, true
		}
		if b.closed {
			b.mu.Unlock()
			var zero T
			return zero, false
		}
		b.cond.Wait()
		b.mu.Unlock()
	}
}

// Len returns the number of items currently queued.
func (b *BlockingQueue[T]) Len() int64 {
	return b.q.Len()
}
