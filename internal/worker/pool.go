// Package worker runs independent searches in parallel on a fixed number of
// goroutines.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/domination-go/internal/config"
)

// ErrStopped is the error of a job that was drained after Stop.
var ErrStopped = errors.New("worker pool stopped")

// Job is one search string to run.
type Job struct {
	Search string
	Index  int // position in the submitted order
}

// Result is the outcome of one job.
type Result struct {
	Job   Job
	Info  *config.SearchInfo // nil when the search string did not parse
	Stats config.Stats
	Err   error
}

// RunFunc runs a job. It should return promptly once ctx is done.
type RunFunc func(ctx context.Context, job Job) Result

// Pool runs jobs on a fixed set of workers.
type Pool struct {
	numWorkers int
	bufferSize int
	jobs       chan Job
	results    chan Result
	run        RunFunc
	wg         sync.WaitGroup
	stopped    atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
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

// WithBufferSize sets the job and result buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool that runs jobs with run. Jobs are cancelled when ctx
// is done or Stop is called. Default: 1 worker, buffer size of 10.
func NewPool(ctx context.Context, run RunFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 10,
		run:        run,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.jobs = make(chan Job, p.bufferSize)
	p.results = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobs {
		if p.IsStopped() {
			p.results <- Result{Job: job, Err: ErrStopped}
			continue
		}
		p.results <- p.run(p.ctx, job)
	}
}

// Submit queues a job. It may block while the buffer is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// TrySubmit queues a job without blocking. It returns false if the buffer
// is full or the pool is stopped.
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

// Stop cancels the running jobs. Queued jobs are drained with ErrStopped.
func (p *Pool) Stop() {
	p.stopped.Store(true)
	p.cancel()
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close stops accepting jobs and waits for the workers to finish. The result
// channel is closed once they have.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
	p.cancel()
}

// Results returns the result channel.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
