package atomiccell_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gsingh-ds/go-atomic-tailqueue/atomiccell"
)

func TestCellBasicOps(t *testing.T) {
	c := atomiccell.New()
	assert.Equal(t, int64(0), c.Load())

	c.Store(10)
	assert.Equal(t, int64(10), c.Load())
	assert.Equal(t, int64(13), c.Add(3))
	assert.Equal(t, int64(10), c.Sub(3))
	assert.Equal(t, int64(11), c.Inc())
	assert.Equal(t, int64(10), c.Dec())

	c.Destroy()
	assert.Equal(t, int64(-1), c.Load())
}

func TestCellConcurrentInc(t *testing.T) {
	c := atomiccell.New()
	var wg sync.WaitGroup
	const goroutines, perGoroutine = 100, 500
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(goroutines*perGoroutine), c.Load())
}

func TestGroupCompoundUpdate(t *testing.T) {
	g := atomiccell.NewGroup()
	a := atomiccell.NewPaired(g)
	b := atomiccell.NewPaired(g)

	g.Do(func() {
		a.StoreLocked(2)
		b.StoreLocked(3)
	})

	assert.Equal(t, int64(2), a.Load())
	assert.Equal(t, int64(3), b.Load())

	g.Do(func() {
		a.AddLocked(2)
		b.AddLocked(3)
	})
	assert.Equal(t, int64(4), a.Load())
	assert.Equal(t, int64(6), b.Load())
}

func TestLockedAccessorRequiresPairing(t *testing.T) {
	c := atomiccell.New()
	assert.Panics(t, func() {
		c.LoadLocked()
	})
}

func TestPairedCellStandaloneOpsStillWork(t *testing.T) {
	g := atomiccell.NewGroup()
	a := atomiccell.NewPaired(g)

	a.Store(5)
	assert.Equal(t, int64(5), a.Load())
	assert.Equal(t, int64(8), a.Add(3))
}
