package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistalabs/vista/internal/testing/leaktest"
)

type testJob struct {
	executed *int32
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	defer checker.Check(0)

	var executed int32
	pool := NewPool(2, 4, 0)
	pool.Start()

	job := &testJob{executed: &executed}
	require.NoError(t, pool.Enqueue(context.Background(), job))
	require.NoError(t, pool.Enqueue(context.Background(), job))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&executed) == 2
	}, time.Second, 5*time.Millisecond)

	pool.Stop()
}

func TestPool_TryEnqueueFull(t *testing.T) {
	// Not started, so nothing drains the queue
	pool := NewPool(1, 1, 0)
	noop := JobFunc(func(context.Context) error { return nil })

	require.NoError(t, pool.TryEnqueue(noop))
	assert.ErrorIs(t, pool.TryEnqueue(noop), ErrQueueFull)
	pool.Stop()
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1, 0)
	pool.Start()
	pool.Stop()
	pool.Stop()

	noop := JobFunc(func(context.Context) error { return nil })
	assert.ErrorIs(t, pool.Enqueue(context.Background(), noop), ErrPoolStopped)
	assert.ErrorIs(t, pool.TryEnqueue(noop), ErrPoolStopped)
}

func TestPool_EnqueueHonoursContext(t *testing.T) {
	pool := NewPool(1, 0, 0)
	defer pool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := pool.Enqueue(ctx, JobFunc(func(context.Context) error { return nil }))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPool_JobTimeout(t *testing.T) {
	pool := NewPool(1, 1, 10*time.Millisecond)
	pool.Start()
	defer pool.Stop()

	done := make(chan error, 1)
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	})))

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	case <-time.After(time.Second):
		t.Fatal("job was never cancelled")
	}
}

func TestPool_FailingJobKeepsWorkerAlive(t *testing.T) {
	pool := NewPool(1, 2, 0)
	pool.Start()
	defer pool.Stop()

	var ran int32
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(context.Context) error {
		return errors.New("boom")
	})))
	require.NoError(t, pool.Enqueue(context.Background(), JobFunc(func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&ran) == 1 }, time.Second, 5*time.Millisecond)
}
