package scheduler

import (
	"errors"
	"sync"
	"time"

	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgTickSkipped  = "Scheduled tick skipped, worker queue full"
	LogMsgTickDropped  = "Scheduled tick dropped"
)

// Enqueuer is the part of worker.Pool the scheduler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) error
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool Enqueuer
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. A tick that finds the
// worker queue full is skipped rather than queued behind the previous run.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	logger.Info(LogMsgJobScheduled, "job", name, "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.workerPool.TryEnqueue(job); err != nil {
					if errors.Is(err, worker.ErrQueueFull) {
						logger.Warn(LogMsgTickSkipped, "job", name)
						continue
					}
					logger.Warn(LogMsgTickDropped, "job", name, "error", err)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
