package workers

import (
	"context"
	"runtime"
	"sync"
)

// Pool runs submitted jobs on a fixed set of goroutines
type Pool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewPool creates a pool with numWorkers goroutines; 0 means one per CPU
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &Pool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the worker goroutines
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		go p.worker()
	}
}

func (p *Pool) worker() {
	for {
		select {
		case job := <-p.jobQueue:
			job()
			p.wg.Done()
		case <-p.quit:
			return
		}
	}
}

// Submit queues a job
func (p *Pool) Submit(job func()) {
	p.wg.Add(1)
	p.jobQueue <- job
}

// SubmitWithContext queues a job that is skipped if ctx is already done when it runs
func (p *Pool) SubmitWithContext(ctx context.Context, job func()) {
	p.wg.Add(1)
	p.jobQueue <- func() {
		select {
		case <-ctx.Done():
		default:
			job()
		}
	}
}

// Wait blocks until every queued job has finished
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Stop shuts the workers down. Jobs still queued are dropped.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
}
