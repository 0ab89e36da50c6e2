package demo

import (
	"github.com/gammazero/deque"
	"github.com/google/uuid"
)

// WorkItem is an opaque item pointer as far as tailqueue/ringqueue are
// concerned: the queue never inspects its fields, only moves the
// pointer around. The UUID gives each item a stable identity so tests
// and benchmarks can check exactly-once delivery without relying on
// pointer equality surviving a splice/take.
type WorkItem struct {
	ID      uuid.UUID
	Payload int
}

// GenerateWorkItems builds n distinct work items backed by a
// github.com/gammazero/deque scratch buffer (the same ring-backed deque
// petenewcomb-psg-go uses for its task pools), then drains it into a
// plain slice in FIFO order. Using a deque here, rather than append,
// means the generator and the tailqueue-backed consumer in this package
// exercise two different FIFO implementations side by side.
func GenerateWorkItems(n int) []*WorkItem {
	var buf deque.Deque[*WorkItem]
	for i := 0; i < n; i++ {
		buf.PushBack(&WorkItem{ID: uuid.New(), Payload: i})
	}

	items := make([]*WorkItem, 0, n)
	for buf.Len() > 0 {
		items = append(items, buf.PopFront())
	}
	return items
}
