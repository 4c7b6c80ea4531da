package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunksCoversEveryItemOnce(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 1001} {
		seen := make([]int32, n)
		Chunks(n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, c := range seen {
			assert.Equal(t, int32(1), c, "n=%d item %d", n, i)
		}
	}
}

func TestForEach(t *testing.T) {
	out := make([]int, 50)
	ForEach(len(out), 8, func(i int) { out[i] = i * i })
	for i, v := range out {
		assert.Equal(t, i*i, v)
	}

	var calls int
	ForEach(3, 8, func(int) { calls++ })
	assert.Equal(t, 3, calls, "below the threshold work runs sequentially")
}
