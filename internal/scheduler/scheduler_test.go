package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vistalabs/vista/internal/testing/leaktest"
	"github.com/vistalabs/vista/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	atomic.AddInt32(&m.RunCount, 1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10, time.Second)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	sched.Schedule("test", 10*time.Millisecond, job)

	// Wait for at least 2 runs
	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

type fullQueue struct {
	attempts int32
}

func (f *fullQueue) TryEnqueue(worker.Job) error {
	atomic.AddInt32(&f.attempts, 1)
	return worker.ErrQueueFull
}

func TestScheduler_SkipsWhenQueueFull(t *testing.T) {
	q := &fullQueue{}
	sched := New(q)

	sched.Schedule("backup", 5*time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&q.attempts) >= 3 }, time.Second, 5*time.Millisecond)
	sched.Stop()
}

func TestScheduler_StopReleasesGoroutines(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		sched := New(&fullQueue{})
		sched.Schedule("a", time.Hour, &MockJob{})
		sched.Schedule("b", time.Hour, &MockJob{})
		sched.Stop()
		sched.Stop()
	})
}
