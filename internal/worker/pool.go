package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrPoolClosed is returned when submitting to a stopped pool
var ErrPoolClosed = errors.New("worker pool is shutting down")

// Job is a unit of work run by a worker. The context is cancelled when the
// submitter cancels or the pool stops.
type Job func(ctx context.Context)

type task struct {
	ctx context.Context
	run Job
}

// Pool manages a fixed set of goroutines that run submitted jobs
type Pool struct {
	workers  int
	jobQueue chan task
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.Logger

	mu      sync.RWMutex
	stopped bool
}

// NewPool creates a new pool with the specified number of workers.
// queueSize <= 0 buffers twice the worker count.
func NewPool(workers, queueSize int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 4 // default to 4 workers
	}
	if queueSize <= 0 {
		queueSize = workers * 2
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:  workers,
		jobQueue: make(chan task, queueSize),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
	}
}

// Start launches all worker goroutines
func (p *Pool) Start() {
	p.logger.Debug("Starting worker pool",
		zap.Int("workers", p.workers),
		zap.Int("queue_size", cap(p.jobQueue)))

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop cancels running and queued jobs and waits for the workers to exit
func (p *Pool) Stop() {
	// Cancel first so a Submit blocked on a full queue releases the read lock
	p.cancel()

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobQueue)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Debug("Worker pool stopped")
}

// Stopped reports whether Stop has been called
func (p *Pool) Stopped() bool {
	return p.ctx.Err() != nil
}

// Submit queues a job. It blocks while the queue is full and fails if ctx is
// done or the pool has stopped before the job was queued.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	if job == nil {
		return fmt.Errorf("job may not be nil")
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolClosed
	}

	select {
	case p.jobQueue <- task{ctx: ctx, run: job}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

// worker is the main loop for a single worker
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	// Jobs still queued at Stop run with a cancelled context
	for t := range p.jobQueue {
		p.run(id, t)
	}
	p.logger.Debug("Worker stopping (queue closed)", zap.Int("worker_id", id))
}

// run executes one job with a context bound to both the submitter and the pool
func (p *Pool) run(id int, t task) {
	ctx, cancel := context.WithCancel(t.ctx)
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()
	if p.ctx.Err() != nil {
		// AfterFunc cancels asynchronously once the pool is already stopped
		cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Job panicked", zap.Int("worker_id", id), zap.Any("panic", r))
		}
	}()

	t.run(ctx)
}
