package build

import "sync"

type orderedResult[T any] struct {
	Value T
	Err   error
}

// runOrdered fans fn out over items on a bounded worker pool and returns the
// per-item results in input order. A failing item never stops the others;
// every item is attempted exactly once.
func runOrdered[T any, R any](items []T, concurrency int, fn func(T) (R, error)) []orderedResult[R] {
	if len(items) == 0 {
		return nil
	}
	concurrency = max(1, min(concurrency, len(items)))

	indexes := make(chan int)
	results := make([]orderedResult[R], len(items))

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for range concurrency {
		go func() {
			defer wg.Done()
			for i := range indexes {
				v, err := fn(items[i])
				results[i] = orderedResult[R]{Value: v, Err: err}
			}
		}()
	}

	for i := range items {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}
