package backend

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt64BasicOps(t *testing.T) {
	var c Int64
	assert.Equal(t, int64(0), c.Load())

	c.Store(5)
	assert.Equal(t, int64(5), c.Load())

	assert.Equal(t, int64(8), c.Add(3))
	assert.True(t, c.CompareAndSwap(8, 20))
	assert.False(t, c.CompareAndSwap(8, 99))
	assert.Equal(t, int64(20), c.Load())
	assert.Equal(t, int64(20), c.Swap(1))
	assert.Equal(t, int64(1), c.Load())
}

func TestInt64ConcurrentAdd(t *testing.T) {
	var c Int64
	var wg sync.WaitGroup
	const goroutines, perGoroutine = 50, 200
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(goroutines*perGoroutine), c.Load())
}

func TestPointerBasicOps(t *testing.T) {
	var p Pointer[int]
	assert.Nil(t, p.Load())

	a, b := 1, 2
	p.Store(&a)
	assert.Same(t, &a, p.Load())

	assert.True(t, p.CompareAndSwap(&a, &b))
	assert.Same(t, &b, p.Load())
	assert.False(t, p.CompareAndSwap(&a, &b))

	old := p.Swap(&a)
	assert.Same(t, &b, old)
	assert.Same(t, &a, p.Load())
}
