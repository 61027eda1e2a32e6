//go:build linux

// Package affinity pins OS threads to hardware units. Strictly a locality
// hint: every operation is best-effort and platforms without support compile
// to a no-op.
package affinity

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Set binds the calling OS thread to the CPU at index, wrapping modulo the
// online CPU count. The caller must have locked its goroutine to the thread
// first, or the scheduler migrates the binding away. Errors are swallowed:
// the hint must never fail the operation it is hinting for.
func Set(index int) {
	cpus := runtime.NumCPU()
	if cpus < 1 {
		return
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(index % cpus)
	_ = unix.SchedSetaffinity(0, &set)
}
