package pipeline

import "sync"

// runPool runs fn over every item in items using at most parallelism
// concurrent goroutines, collecting results in input order. It is a
// trimmed, single-purpose descendant of the semaphore-bound worker pool
// used for batch item processing in the wider example corpus: no
// priority queue, retry, or circuit breaker, since a single identify()
// call's per-formula tree searches are independent, equally weighted
// units of work with no partial-failure recovery story — a failed
// computation simply yields a candidateResult with optimal unset, which
// adaptiveSearch drops before ranking.
func runPool[T, R any](parallelism int, items []T, fn func(T) R) []R {
	if parallelism < 1 {
		parallelism = 1
	}
	out := make([]R, len(items))
	if len(items) == 0 {
		return out
	}

	sem := make(chan struct{}, parallelism)
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, item T) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = fn(item)
		}(i, item)
	}
	wg.Wait()

	return out
}
