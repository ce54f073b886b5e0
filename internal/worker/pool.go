// Package worker provides the fan-out machinery for row-parallel
// processing. Rows are independent and the vocabulary is immutable, so
// sharding the row set across workers needs no locking: each job owns
// a disjoint output range and only errors travel back.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed on a pool worker.
type Job interface {
	Execute(ctx context.Context) error
}

// Pool runs submitted jobs across a fixed set of workers. Failures are
// collected into a slice under a mutex rather than a bounded channel,
// so workers never block handing back results and Submit can queue any
// number of jobs without wedging against an undrained pool.
type Pool struct {
	workers int
	jobs    chan Job
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	mu     sync.Mutex
	failed []error
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := job.Execute(p.ctx); err != nil {
				p.mu.Lock()
				p.failed = append(p.failed, err)
				p.mu.Unlock()
			}
		}
	}
}

// Submit queues a job. Submissions after Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for all jobs to finish, releases the
// pool's context, and returns the errors of the jobs that failed.
func (p *Pool) Wait() []error {
	close(p.jobs)
	p.wg.Wait()
	p.cancel()
	return p.failed
}

// Shutdown cancels outstanding work immediately.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// Range is a half-open row interval [Start, End).
type Range struct {
	Start, End int
}

// Shards splits n rows into at most parts contiguous ranges of nearly
// equal size. Empty ranges are never emitted.
func Shards(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	size := n / parts
	rem := n % parts
	shards := make([]Range, 0, parts)
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < rem {
			end++
		}
		shards = append(shards, Range{Start: start, End: end})
		start = end
	}
	return shards
}
