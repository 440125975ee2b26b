package aggregate

import (
	"context"
	"sync"
)

// runIndexedParallel executes fn for indices [0,n) on a bounded worker pool
// and stores each result at its own index, so the output order never depends
// on scheduling. Feeding stops once ctx is done; unfed slots keep their zero
// value and the caller must check ctx.
func runIndexedParallel[T any](ctx context.Context, n, workers int, fn func(int) T) []T {
	out := make([]T, n)
	if n == 0 {
		return out
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out[idx] = fn(idx)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return out
}
