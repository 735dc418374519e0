package workers

import (
	"context"
	"runtime"
	"sync"

	"citywalk/internal/mathutil"
)

// ParallelMap applies fn to every item on up to NumCPU goroutines and
// returns the results in input order.
func ParallelMap[T any, R any](items []T, fn func(T) R) []R {
	return ParallelMapWithContext(context.Background(), items, fn)
}

// ParallelMapWithContext is ParallelMap with cancellation checked between items.
// Items skipped after cancellation keep the zero value.
func ParallelMapWithContext[T any, R any](ctx context.Context, items []T, fn func(T) R) []R {
	if len(items) == 0 {
		return nil
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, len(items)/numWorkers)

	results := make([]R, len(items))
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		start := i
		end := mathutil.IntMin(i+chunkSize, len(items))

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					results[j] = fn(items[j])
				}
			}
		}(start, end)
	}

	wg.Wait()
	return results
}

// ParallelForEach runs fn for every item; fn must be safe for concurrent use
func ParallelForEach[T any](items []T, fn func(T)) {
	if len(items) == 0 {
		return
	}

	numWorkers := mathutil.IntMin(runtime.NumCPU(), len(items))
	chunkSize := mathutil.IntMax(1, len(items)/numWorkers)
	var wg sync.WaitGroup

	for i := 0; i < len(items); i += chunkSize {
		chunk := items[i:mathutil.IntMin(i+chunkSize, len(items))]

		wg.Add(1)
		go func(chunk []T) {
			defer wg.Done()
			for _, item := range chunk {
				fn(item)
			}
		}(chunk)
	}

	wg.Wait()
}
