package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	assert.Equal(t, int64(n), counter)
}

func TestForChunks_CoversRangeOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 3}

	n := 37
	seen := make([]int32, n)
	var mu sync.Mutex
	var chunks int

	ForChunks(n, func(start, end int) {
		mu.Lock()
		chunks++
		mu.Unlock()
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	}, cfg)

	for i, v := range seen {
		assert.Equal(t, int32(1), v, "index %d", i)
	}
	assert.Greater(t, chunks, 1, "expected work to be split")
}

func TestForChunks_Sequential(t *testing.T) {
	var calls int
	ForChunks(100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 100, end)
	}, Sequential())
	assert.Equal(t, 1, calls)
}

func TestForChunks_Empty(t *testing.T) {
	ForChunks(0, func(_, _ int) {
		t.Fatal("f must not be called for an empty range")
	}, DefaultConfig())
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	data := make([]float64, 1<<16)

	for i := 0; i < b.N; i++ {
		For(len(data), func(j int) {
			data[j] = float64(j) * 2
		}, cfg)
	}
}
