package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lgbarn/chess-engine-go/internal/engine"
)

// noopProcessFunc returns a basic process function that does nothing.
func noopProcessFunc() ProcessFunc {
	return func(ctx context.Context, job Job) Result {
		return Result{Index: job.Index, Move: job.Move}
	}
}

// countingProcessFunc returns a process function that increments a counter.
func countingProcessFunc(counter *int32) ProcessFunc {
	return func(ctx context.Context, job Job) Result {
		atomic.AddInt32(counter, 1)
		return Result{Index: job.Index, Move: job.Move, Nodes: 1}
	}
}

// collectResults drains the result channel and returns the count.
func collectResults(pool *Pool) int {
	count := 0
	for range pool.Results() {
		count++
	}
	return count
}

// TestPoolBasic tests basic worker pool functionality.
func TestPoolBasic(t *testing.T) {
	var processed int32
	pool := NewPool(countingProcessFunc(&processed), WithWorkers(4))
	pool.Start(context.Background())

	const numJobs = 10
	for i := 0; i < numJobs; i++ {
		pool.Submit(Job{Game: engine.New(), Move: "e2e4", Depth: 1, Index: i})
	}

	go pool.Close()

	resultCount := collectResults(pool)
	if resultCount != numJobs {
		t.Errorf("results = %d; want %d", resultCount, numJobs)
	}
	if got := atomic.LoadInt32(&processed); got != numJobs {
		t.Errorf("processed = %d; want %d", got, numJobs)
	}
}

// TestPoolEarlyStop tests early termination with Stop().
func TestPoolEarlyStop(t *testing.T) {
	var processedCount int32

	slowProcessFunc := func(ctx context.Context, job Job) Result {
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&processedCount, 1)
		return Result{Index: job.Index}
	}

	pool := NewPool(slowProcessFunc, WithWorkers(2), WithBufferSize(100))
	pool.Start(context.Background())

	const numJobs = 50
	for i := 0; i < numJobs; i++ {
		pool.Submit(Job{Index: i})
	}

	time.Sleep(30 * time.Millisecond)
	pool.Stop()

	go pool.Close()
	collectResults(pool)

	// Should have processed fewer than total due to early stop
	if processed := atomic.LoadInt32(&processedCount); processed >= numJobs {
		t.Logf("early stop may not have prevented all processing: %d processed", processed)
	}
}

// TestPoolCancelledContext tests that jobs after cancellation report the context error.
func TestPoolCancelledContext(t *testing.T) {
	var processed int32
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(countingProcessFunc(&processed), WithWorkers(2))
	results := pool.Run(ctx, []Job{{Index: 0}, {Index: 1}, {Index: 2}})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d; want 3", len(results))
	}
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d Err = %v; want context.Canceled", r.Index, r.Err)
		}
	}
	if got := atomic.LoadInt32(&processed); got != 0 {
		t.Errorf("processed = %d; want 0", got)
	}
}

// TestPoolIsStopped tests the IsStopped method.
func TestPoolIsStopped(t *testing.T) {
	pool := NewPool(noopProcessFunc(), WithWorkers(2))
	pool.Start(context.Background())

	if pool.IsStopped() {
		t.Error("pool should not be stopped initially")
	}

	pool.Stop()

	if !pool.IsStopped() {
		t.Error("pool should be stopped after Stop()")
	}

	pool.Close()
}

// TestPoolTrySubmit tests non-blocking submission.
func TestPoolTrySubmit(t *testing.T) {
	slowProcessFunc := func(ctx context.Context, job Job) Result {
		time.Sleep(100 * time.Millisecond)
		return Result{}
	}

	// Small buffer to test blocking behavior
	pool := NewPool(slowProcessFunc, WithBufferSize(2))
	pool.Start(context.Background())

	// First two should succeed (buffer size 2)
	if !pool.TrySubmit(Job{Index: 0}) {
		t.Error("first TrySubmit should succeed")
	}
	if !pool.TrySubmit(Job{Index: 1}) {
		t.Error("second TrySubmit should succeed")
	}

	// Third might fail if buffer is full (timing-dependent, just verify no panic)
	pool.TrySubmit(Job{Index: 2})

	// After stop, TrySubmit should return false
	pool.Stop()
	if pool.TrySubmit(Job{Index: 3}) {
		t.Error("TrySubmit after Stop should return false")
	}

	go pool.Close()
	collectResults(pool)
}

// TestPoolRunOrder tests that Run returns results in job order.
func TestPoolRunOrder(t *testing.T) {
	variableDelayFunc := func(ctx context.Context, job Job) Result {
		if job.Index%2 == 0 {
			time.Sleep(10 * time.Millisecond)
		}
		return Result{Index: job.Index, Move: job.Move}
	}

	moves := []string{"a2a3", "b2b3", "c2c3", "d2d3", "e2e3", "f2f3", "g2g3", "h2h3"}
	jobs := make([]Job, len(moves))
	for i, m := range moves {
		jobs[i] = Job{Move: m, Index: i}
	}

	pool := NewPool(variableDelayFunc, WithWorkers(4), WithBufferSize(2))
	results := pool.Run(context.Background(), jobs)

	if len(results) != len(moves) {
		t.Fatalf("received %d results; want %d", len(results), len(moves))
	}
	for i, r := range results {
		if r.Index != i || r.Move != moves[i] {
			t.Errorf("results[%d] = {%d %s}; want {%d %s}", i, r.Index, r.Move, i, moves[i])
		}
	}
}

// TestPoolNoRace is designed to be run with -race flag.
func TestPoolNoRace(t *testing.T) {
	var counter int32
	pool := NewPool(countingProcessFunc(&counter), WithWorkers(8), WithBufferSize(50))
	pool.Start(context.Background())

	const numJobs = 100
	go func() {
		for i := 0; i < numJobs; i++ {
			pool.Submit(Job{Index: i})
		}
		pool.Close()
	}()

	collectResults(pool)

	if got := atomic.LoadInt32(&counter); got != numJobs {
		t.Errorf("processed = %d; want %d", got, numJobs)
	}
}

// TestNewPool tests the functional options constructor.
func TestNewPool(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"with workers", []PoolOption{WithWorkers(4)}, 4, 10},
		{"with buffer size", []PoolOption{WithBufferSize(50)}, 1, 50},
		{"with multiple options", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid workers ignored", []PoolOption{WithWorkers(0)}, 1, 10},
		{"negative workers ignored", []PoolOption{WithWorkers(-1)}, 1, 10},
		{"invalid buffer size ignored", []PoolOption{WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(noopProcessFunc(), tt.opts...)
			if got := pool.NumWorkers(); got != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", got, tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
		})
	}
}
