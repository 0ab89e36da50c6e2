package boundedring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferPollFIFOOrder(t *testing.T) {
	r := New[int](8)
	for i := 0; i < 8; i++ {
		require.True(t, r.Offer(i))
	}
	assert.False(t, r.Offer(8), "ring at capacity should reject further offers")

	for i := 0; i < 8; i++ {
		v, ok := r.Poll()
		require.True(t, ok)
		assert.Equal(t, i, v)
	}
	_, ok := r.Poll()
	assert.False(t, ok)
}

func TestCapRoundsUpToPowerOfTwo(t *testing.T) {
	r := New[int](5)
	assert.Equal(t, uint64(8), r.Cap())
}

func TestWrapsAroundAfterDrain(t *testing.T) {
	r := New[int](4)
	for round := 0; round < 3; round++ {
		for i := 0; i < 4; i++ {
			require.True(t, r.Offer(round*4+i))
		}
		for i := 0; i < 4; i++ {
			v, ok := r.Poll()
			require.True(t, ok)
			assert.Equal(t, round*4+i, v)
		}
	}
}
