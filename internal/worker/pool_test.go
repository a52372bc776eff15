package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNewPoolDefaults(t *testing.T) {
	p := NewPool(0, 0, nil)
	if p.workers != 4 {
		t.Errorf("Expected 4 workers, got %d", p.workers)
	}
	if cap(p.jobQueue) != 8 {
		t.Errorf("Expected queue size 8, got %d", cap(p.jobQueue))
	}

	p = NewPool(2, 5, zap.NewNop())
	if p.workers != 2 || cap(p.jobQueue) != 5 {
		t.Errorf("Expected 2 workers and queue 5, got %d and %d", p.workers, cap(p.jobQueue))
	}
}

func TestPoolRunsJobs(t *testing.T) {
	p := NewPool(3, 0, zap.NewNop())
	p.Start()
	defer p.Stop()

	var count int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		err := p.Submit(context.Background(), func(ctx context.Context) {
			defer wg.Done()
			atomic.AddInt32(&count, 1)
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wg.Wait()

	if got := atomic.LoadInt32(&count); got != 20 {
		t.Errorf("Expected 20 jobs to run, got %d", got)
	}
}

func TestPoolSubmitAfterStop(t *testing.T) {
	p := NewPool(1, 1, zap.NewNop())
	p.Start()
	p.Stop()
	p.Stop() // idempotent

	err := p.Submit(context.Background(), func(ctx context.Context) {})
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Expected ErrPoolClosed, got %v", err)
	}
}

func TestPoolSubmitNilJob(t *testing.T) {
	p := NewPool(1, 1, zap.NewNop())
	if err := p.Submit(context.Background(), nil); err == nil {
		t.Error("Expected error for nil job")
	}
}

func TestPoolSubmitContextCancelled(t *testing.T) {
	// Not started: the single queue slot fills and the next Submit blocks
	p := NewPool(1, 1, zap.NewNop())
	defer p.Stop()

	if err := p.Submit(context.Background(), func(ctx context.Context) {}); err != nil {
		t.Fatalf("First submit failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := p.Submit(ctx, func(ctx context.Context) {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestPoolStopCancelsRunningJob(t *testing.T) {
	p := NewPool(1, 0, zap.NewNop())
	p.Start()

	started := make(chan struct{})
	finished := make(chan error, 1)
	err := p.Submit(context.Background(), func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		finished <- ctx.Err()
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	<-started
	p.Stop()

	select {
	case err := <-finished:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Job was not cancelled by Stop")
	}
}

func TestPoolRecoversPanics(t *testing.T) {
	p := NewPool(1, 0, zap.NewNop())
	p.Start()
	defer p.Stop()

	if err := p.Submit(context.Background(), func(ctx context.Context) { panic("boom") }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	done := make(chan struct{})
	if err := p.Submit(context.Background(), func(ctx context.Context) { close(done) }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Worker did not survive a panicking job")
	}
}

func TestPoolQueuedJobsSeeCancelledContextAfterStop(t *testing.T) {
	// Not started, so both jobs are still queued when Stop runs
	p := NewPool(1, 2, zap.NewNop())

	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		if err := p.Submit(context.Background(), func(ctx context.Context) {
			results <- ctx.Err()
		}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	p.cancel()
	p.Start()
	p.Stop()

	for i := 0; i < 2; i++ {
		select {
		case err := <-results:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("Queued job never ran")
		}
	}
}
