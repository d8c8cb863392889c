package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vistalabs/vista/internal/logger"
)

var (
	// ErrQueueFull is returned by TryEnqueue when no slot is free
	ErrQueueFull = errors.New("worker queue full")
	// ErrPoolStopped is returned when enqueueing after Stop
	ErrPoolStopped = errors.New("worker pool stopped")
)

// Job represents a task to be executed by a worker
type Job interface {
	Process(ctx context.Context) error
}

// JobFunc adapts a function to Job
type JobFunc func(ctx context.Context) error

// Process calls f(ctx)
func (f JobFunc) Process(ctx context.Context) error {
	return f(ctx)
}

// Pool represents a worker pool
type Pool struct {
	workers    int
	jobTimeout time.Duration
	jobQueue   chan Job
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewPool creates a new worker pool. A jobTimeout of zero disables the
// per-job deadline.
func NewPool(workers, queueSize int, jobTimeout time.Duration) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize < 0 {
		queueSize = DefaultQueueSize
	}
	return &Pool{
		workers:    workers,
		jobTimeout: jobTimeout,
		jobQueue:   make(chan Job, queueSize),
		quit:       make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx := context.Background()
	if p.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.jobTimeout)
		defer cancel()
	}
	log := logger.FromContext(ctx)
	if err := job.Process(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Error(LogMsgWorkerJobTimeout, "timeout", p.jobTimeout, "error", err)
			return
		}
		log.Error(LogMsgWorkerJobFailed, "error", err)
	}
}

// Enqueue adds a job to the queue, blocking until a slot is free, the pool
// stops or ctx is done.
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	if p.isStopped() {
		return ErrPoolStopped
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryEnqueue adds a job without blocking
func (p *Pool) TryEnqueue(job Job) error {
	if p.isStopped() {
		return ErrPoolStopped
	}
	select {
	case p.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop stops the workers and waits for running jobs to finish. Jobs still
// queued are discarded.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}

func (p *Pool) isStopped() bool {
	select {
	case <-p.quit:
		return true
	default:
		return false
	}
}
