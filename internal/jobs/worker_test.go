package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorker_EnqueueRunsJob(t *testing.T) {
	w := NewWorker(2)

	done := make(chan struct{})
	w.Enqueue(func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued job never ran")
	}
	w.Shutdown()

	stats := w.GetStats()
	assert.GreaterOrEqual(t, stats.CompletedJobs, int64(1))
	assert.Equal(t, int64(0), stats.FailedJobs)
}

func TestWorker_FailedJobsCounted(t *testing.T) {
	w := NewWorker(1)

	done := make(chan struct{})
	w.Enqueue(func(ctx context.Context) error {
		defer close(done)
		return errors.New("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued job never ran")
	}
	w.Shutdown()

	assert.Equal(t, int64(1), w.GetStats().FailedJobs)
}

func TestWorker_EnqueueAsync(t *testing.T) {
	w := NewWorker(1)

	done := make(chan struct{})
	w.EnqueueAsync(func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("async job never ran")
	}
	w.Shutdown()
}
