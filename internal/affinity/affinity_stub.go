//go:build !linux

package affinity

// Set is a no-op on platforms without sched_setaffinity.
func Set(index int) {}
