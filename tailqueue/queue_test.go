package tailqueue_test

import (
	"testing"

	. "gopkg.in/check.v1"

	"github.com/gsingh-ds/go-atomic-tailqueue/atomiccell"
	"github.com/gsingh-ds/go-atomic-tailqueue/tailqueue"
)

func Test(t *testing.T) { TestingT(t) }

type QueueSuite struct{}

var _ = Suite(&QueueSuite{})

func collect[T any](q *tailqueue.Queue[T]) []T {
	var got []T
	q.Iterate(func(item T) bool {
		got = append(got, item)
		return true
	})
	return got
}

// S1: head inserts then tail appends, single thread.
func (s *QueueSuite) TestInsertHeadThenEnqueue(c *C) {
	q := tailqueue.New[int]()

	for v := 10; v >= 1; v-- {
		q.InsertHead(v)
	}
	for v := 21; v <= 30; v++ {
		q.Enqueue(v)
	}

	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}
	c.Assert(collect(q), DeepEquals, want)
	c.Assert(q.Len(), Equals, int64(20))
}

// S2: mixed inserts.
func (s *QueueSuite) TestEnqueueThenInsertHead(c *C) {
	q := tailqueue.New[int]()

	for v := 1; v <= 10; v++ {
		q.Enqueue(v)
	}
	for v := 30; v >= 21; v-- {
		q.InsertHead(v)
	}

	want := []int{21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	c.Assert(collect(q), DeepEquals, want)
	c.Assert(q.Len(), Equals, int64(20))
}

// S3: take then splice.
func (s *QueueSuite) TestTakeThenSplice(c *C) {
	q := tailqueue.New[int]()
	q2 := tailqueue.New[int]()

	for v := 21; v <= 30; v++ {
		q.Enqueue(v)
	}

	tailqueue.Take(q, q2)
	c.Assert(q.Len(), Equals, int64(0))
	c.Assert(collect(q), HasLen, 0)
	c.Assert(q2.Len(), Equals, int64(10))
	c.Assert(collect(q2), DeepEquals, []int{21, 22, 23, 24, 25, 26, 27, 28, 29, 30})

	for v := 1; v <= 10; v++ {
		q.Enqueue(v)
	}
	tailqueue.Splice(q, q2)
	c.Assert(q2.Len(), Equals, int64(0))
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30}
	c.Assert(collect(q), DeepEquals, want)

	for _, v := range []int{31, 32, 33, 34} {
		q.Enqueue(v)
	}
	want = append(want, 31, 32, 33, 34)
	c.Assert(collect(q), DeepEquals, want)
}

func (s *QueueSuite) TestDequeueEmptyIsIdempotent(c *C) {
	q := tailqueue.New[int]()
	_, ok := q.Dequeue()
	c.Assert(ok, Equals, false)
	c.Assert(q.Len(), Equals, int64(0))
	c.Assert(collect(q), HasLen, 0)
}

func (s *QueueSuite) TestEnqueueDequeueFIFO(c *C) {
	q := tailqueue.New[int]()
	for v := 1; v <= 5; v++ {
		q.Enqueue(v)
	}
	for v := 1; v <= 5; v++ {
		got, ok := q.Dequeue()
		c.Assert(ok, Equals, true)
		c.Assert(got, Equals, v)
	}
	_, ok := q.Dequeue()
	c.Assert(ok, Equals, false)
	c.Assert(q.Len(), Equals, int64(0))
}

// S6: destroy with item ownership.
func (s *QueueSuite) TestDestroyWithFinalizer(c *C) {
	q := tailqueue.New[*int]()
	freed := 0
	vals := []int{1, 2, 3}
	for i := range vals {
		q.Enqueue(&vals[i])
	}

	q.DestroyWithFinalizer(func(item *int) {
		freed++
	})
	c.Assert(freed, Equals, 3)
}

func (s *QueueSuite) TestDestroyWithoutFreeItemsPoisonsQueue(c *C) {
	q := tailqueue.New[int]()
	q.Enqueue(1)
	q.Destroy(false)
	// queue is poisoned; further Iterate sees nothing (head/tail nil).
	c.Assert(collect(q), HasLen, 0)
}

func (s *QueueSuite) TestPairedQueueCompoundUpdate(c *C) {
	g := atomiccell.NewGroup()
	a := tailqueue.NewPaired[int](g)
	b := tailqueue.NewPaired[int](g)

	g.Do(func() {
		a.EnqueueLocked(1)
		b.EnqueueLocked(2)
	})

	c.Assert(a.Len(), Equals, int64(1))
	c.Assert(b.Len(), Equals, int64(1))
}

func (s *QueueSuite) TestAllocatedNeverDecreases(c *C) {
	q := tailqueue.New[int]()
	q.Enqueue(1)
	q.Enqueue(2)
	allocAfterEnqueue := q.Allocated()
	q.Dequeue()
	q.Dequeue()
	c.Assert(q.Allocated(), Equals, allocAfterEnqueue)
}
