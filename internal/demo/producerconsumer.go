package demo

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"
)

// SentinelRun drives one producer enqueuing a fixed sentinel value n
// times in randomly sized bursts with optional sleeps between bursts,
// and one consumer dequeuing via a BlockingQueue and asserting each
// item equals the sentinel; the producer closes the queue when done so
// the consumer can drain and exit.
//
// It returns the number of sentinel values the consumer actually
// observed. A mismatch is reported through the returned error.
func SentinelRun(ctx context.Context, rng *rand.Rand, n int, sentinel int) (observed int, err error) {
	q := NewBlockingQueue[int]()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer q.Close()
		produced := 0
		for produced < n {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			burst := 1 + rng.Intn(min(8, n-produced))
			for i := 0; i < burst; i++ {
				q.Push(sentinel)
			}
			produced += burst

			if rng.Intn(4) == 0 {
				time.Sleep(time.Duration(rng.Intn(200)) * time.Microsecond)
			}
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item, ok := q.Pop()
			if !ok {
				return nil
			}
			if item != sentinel {
				return errSentinelMismatch
			}
			observed++

			if rng.Intn(4) == 0 {
				time.Sleep(time.Duration(rng.Intn(200)) * time.Microsecond)
			}
		}
	})

	err = g.Wait()
	return observed, err
}

var errSentinelMismatch = sentinelMismatchError{}

type sentinelMismatchError struct{}

func (sentinelMismatchError) Error() string {
	return "demo: consumer observed a value other than the sentinel"
}

