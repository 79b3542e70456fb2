// Package parallel splits an index range into contiguous chunks and runs a
// function over each chunk on its own goroutine.
package parallel

import (
	"runtime"
	"sync"

	"github.com/YuminosukeSato/eslgo/pkg/errors"
)

// Range is the half-open interval [Start, End) handled by one worker.
type Range struct {
	Start, End int
}

// Len returns the number of items in the range.
func (r Range) Len() int { return r.End - r.Start }

// Chunks divides items into at most workers contiguous ranges of
// near-equal size, in ascending order. A non-positive workers means one per
// CPU core.
func Chunks(items, workers int) []Range {
	if items <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items // No need for more workers than items
	}

	// ceiling division
	chunkSize := (items + workers - 1) / workers

	ranges := make([]Range, 0, workers)
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges
}

// Parallelize runs fn once per chunk of [0, items) and waits for all of them.
// chunk is the position of the range in Chunks(items, workers), so callers
// can store per-chunk results in a slice and reduce them in order.
//
// A panic inside fn is recovered and returned as a PanicError. When several
// chunks fail, the error of the lowest chunk is returned.
func Parallelize(items, workers int, fn func(chunk, start, end int) error) error {
	ranges := Chunks(items, workers)
	if len(ranges) == 0 {
		return nil
	}

	errs := make([]error, len(ranges))
	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(chunk int, r Range) {
			defer wg.Done()
			errs[chunk] = errors.SafeExecute("parallel.Parallelize", func() error {
				return fn(chunk, r.Start, r.End)
			})
		}(i, r)
	}
	// Wait for all workers to finish processing
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ParallelizeWithThreshold performs parallelization only when the number of
// items exceeds the threshold. Otherwise fn is called once, synchronously,
// as chunk 0 covering every item.
func ParallelizeWithThreshold(items, threshold, workers int, fn func(chunk, start, end int) error) error {
	if items <= 0 {
		return nil
	}
	if items <= threshold || workers == 1 {
		return errors.SafeExecute("parallel.ParallelizeWithThreshold", func() error {
			return fn(0, 0, items)
		})
	}
	return Parallelize(items, workers, fn)
}
