package pool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestThreadCount(t *testing.T) {
	t.Parallel()

	p := New(3)
	defer p.Close()
	if got := p.ThreadCount(); got != 3 {
		t.Fatalf("ThreadCount=%d, want 3", got)
	}

	// Degenerate requests are clamped to one worker.
	q := New(0)
	defer q.Close()
	if got := q.ThreadCount(); got != 1 {
		t.Fatalf("ThreadCount=%d for New(0), want 1", got)
	}
}

func TestWaitUntilIdleDrainsJobs(t *testing.T) {
	t.Parallel()

	p := New(2)
	defer p.Close()

	var done atomic.Int32
	const jobs = 16
	for i := 0; i < jobs; i++ {
		p.Go(func() {
			time.Sleep(5 * time.Millisecond)
			done.Add(1)
		})
	}

	p.WaitUntilIdle()
	if got := done.Load(); got != jobs {
		t.Fatalf("%d jobs finished after WaitUntilIdle, want %d", got, jobs)
	}

	// An idle pool returns immediately.
	p.WaitUntilIdle()
}

func TestCloseDrainsAndJoins(t *testing.T) {
	t.Parallel()

	p := New(4)
	var done atomic.Int32
	const jobs = 8
	for i := 0; i < jobs; i++ {
		p.Go(func() { done.Add(1) })
	}

	p.Close()
	p.Close() // second close is a no-op

	if got := done.Load(); got != jobs {
		t.Fatalf("%d jobs finished after Close, want %d", got, jobs)
	}
}
