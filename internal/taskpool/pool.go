package taskpool

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Pool runs submitted functions with bounded concurrency.
type Pool struct {
	sem *semaphore.Weighted

	mu     sync.Mutex
	closed bool
}

// New creates a pool that runs at most workers tasks concurrently.
// A non-positive worker count gets a single slot.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(workers))}
}

// Do runs fn on a pool slot and blocks until it returns. The context
// is consulted only while waiting for a slot; a task that has started
// always runs to completion.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("taskpool: pool is closed")
	}
	p.mu.Unlock()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("taskpool: admission: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer p.sem.Release(1)
		defer close(done)
		fn()
	}()
	<-done
	return nil
}

// Close rejects all future submissions. Tasks already dispatched are
// unaffected.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}
