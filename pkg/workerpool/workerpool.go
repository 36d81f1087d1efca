// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Map runs fn over items on workerCount goroutines and returns the results in item order.
// Per-item failures belong in R; Map itself only fails when ctx is canceled before every item
// has been handed to a worker.
func Map[T, R any](ctx context.Context, workerCount int, items []T, fn func(context.Context, T) R) ([]R, error) {
	if workerCount < 1 {
		workerCount = 1
	}
	workerCount = min(workerCount, len(items))

	results := make([]R, len(items))
	indexes := make(chan int, workerCount)

	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				results[idx] = fn(ctx, items[idx])
			}
		}()
	}

	var err error
feed:
	for idx := range items {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case indexes <- idx:
		}
	}
	close(indexes)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}
