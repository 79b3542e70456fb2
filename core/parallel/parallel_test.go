package parallel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestChunks(t *testing.T) {
	tests := []struct {
		name    string
		items   int
		workers int
		want    []Range
	}{
		{"empty", 0, 4, nil},
		{"even", 8, 4, []Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"uneven", 10, 4, []Range{{0, 3}, {3, 6}, {6, 9}, {9, 10}}},
		{"more workers than items", 3, 8, []Range{{0, 1}, {1, 2}, {2, 3}}},
		{"single worker", 5, 1, []Range{{0, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunks(tt.items, tt.workers))
		})
	}

	total := 0
	for _, r := range Chunks(1000, 0) {
		total += r.Len()
	}
	assert.Equal(t, 1000, total)
}

func TestParallelizeCoversEveryItem(t *testing.T) {
	const items = 97
	seen := make([]int, items)
	var mu sync.Mutex

	err := Parallelize(items, 6, func(_, start, end int) error {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			seen[i]++
		}
		return nil
	})
	require.NoError(t, err)
	for i, n := range seen {
		assert.Equal(t, 1, n, "item %d", i)
	}
}

func TestParallelizeReturnsLowestChunkError(t *testing.T) {
	err := Parallelize(40, 4, func(chunk, _, _ int) error {
		if chunk >= 1 {
			return errors.Newf("chunk %d failed", chunk)
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk 1 failed")
}

func TestParallelizeRecoversPanic(t *testing.T) {
	err := Parallelize(4, 2, func(chunk, _, _ int) error {
		if chunk == 1 {
			panic("boom")
		}
		return nil
	})
	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr), "got %v", err)
	assert.Equal(t, "boom", panicErr.PanicValue)
}

func TestParallelizeWithThresholdRunsSequentiallyBelowThreshold(t *testing.T) {
	calls := 0
	err := ParallelizeWithThreshold(10, 100, 4, func(chunk, start, end int) error {
		calls++
		assert.Equal(t, 0, chunk)
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
