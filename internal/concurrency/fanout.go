// Package concurrency holds small fan-out helpers.
package concurrency

import (
	"context"
	"sync"
)

type Task func(ctx context.Context)

// Run starts every task on its own goroutine and waits for all of them to return.
// Tasks must write only to state they own; Run does no synchronization on their behalf.
func Run(ctx context.Context, tasks ...Task) {
	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(fn Task) {
			defer wg.Done()
			fn(ctx)
		}(task)
	}
	wg.Wait()
}
