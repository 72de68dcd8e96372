// Package worker provides a worker pool for parallel perft searches.
package worker

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// Job is one root move to search. Game is owned by the job: workers
// mutate it freely, so callers hand each job its own clone.
type Job struct {
	Game  *engine.Game
	Move  string // long algebraic, e.g. "e7e8q"
	Depth int    // plies below the root move
	Index int    // original index for tracking
}

// Result is the outcome of one Job.
type Result struct {
	Index int
	Move  string
	Nodes uint64
	Err   error
}

// ProcessFunc is the function signature for processing a job.
type ProcessFunc func(ctx context.Context, job Job) Result

// Pool manages a pool of workers for parallel searches.
type Pool struct {
	numWorkers  int
	bufferSize  int
	jobs        chan Job
	results     chan Result
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. processFunc is required; by default the
// pool has 1 worker and a buffer of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.jobs = make(chan Job, p.bufferSize)
	p.results = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines. Cancelling ctx has the same effect
// as Stop.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// worker processes jobs until the job channel is closed.
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.jobs {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		if err := ctx.Err(); err != nil {
			p.results <- Result{Index: job.Index, Move: job.Move, Err: err}
			continue
		}
		p.results <- p.processFunc(ctx, job)
	}
}

// Submit submits a job. It blocks while the job buffer is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// TrySubmit attempts to submit a job without blocking.
// Returns false if the buffer is full or the pool is stopped.
func (p *Pool) TrySubmit(job Job) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Stop signals workers to stop processing new jobs.
// Jobs already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the job channel and waits for all workers to finish, then
// closes the result channel.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Run starts the pool, feeds it every job, waits for all results and
// returns them in job index order. The pool cannot be reused afterwards.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	p.Start(ctx)
	go func() {
		for _, job := range jobs {
			p.Submit(job)
		}
		p.Close()
	}()

	out := make([]Result, 0, len(jobs))
	for r := range p.Results() {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
