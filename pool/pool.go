// Package pool provides a minimal fixed worker pool implementing tt.Pool.
// The table itself only ever depends on the interface; this implementation
// exists so resize-time idle waiting has a concrete collaborator in
// examples, benchmarks, and tests.
package pool

import (
	"sync"

	"github.com/IvanBrykalov/ttable/tt"
)

// Pool runs submitted jobs on a fixed set of worker goroutines.
//
// Scheduling (Go) and idle waiting (WaitUntilIdle) belong to one
// coordinating goroutine; jobs themselves may run concurrently with
// anything.
type Pool struct {
	threads int
	jobs    chan func()

	busy    sync.WaitGroup // queued + running jobs
	workers sync.WaitGroup // live workers
	once    sync.Once      // guards channel close
}

// New starts a pool of threads workers (minimum 1).
func New(threads int) *Pool {
	if threads < 1 {
		threads = 1
	}
	p := &Pool{
		threads: threads,
		jobs:    make(chan func(), threads),
	}
	p.workers.Add(threads)
	for i := 0; i < threads; i++ {
		go func() {
			defer p.workers.Done()
			for job := range p.jobs {
				job()
				p.busy.Done()
			}
		}()
	}
	return p
}

// Go schedules a job. It blocks while the queue is full.
func (p *Pool) Go(job func()) {
	p.busy.Add(1)
	p.jobs <- job
}

// ThreadCount reports the fixed worker count.
func (p *Pool) ThreadCount() int { return p.threads }

// WaitUntilIdle blocks until every job scheduled so far has finished.
func (p *Pool) WaitUntilIdle() { p.busy.Wait() }

// Close drains queued jobs and stops the workers. Safe to call more than
// once; Go must not be called after it.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.jobs) })
	p.workers.Wait()
}

// Ensure Pool satisfies the table's collaborator interface at compile time.
var _ tt.Pool = (*Pool)(nil)
