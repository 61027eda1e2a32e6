// Package tt provides a fixed-size, shared, lock-free transposition table
// for game-tree search: a cache of previously computed search results keyed
// by 64-bit position fingerprints, with a depth-and-age replacement policy,
// generation-based aging, parallel clearing, and an occupancy estimator.
//
// Design
//
//   - Storage: one packed 64-bit word per entry, held in an atomic.Uint64.
//     The word carries a 16-bit partial key (top bits of the fingerprint),
//     a 16-bit move handle, a 16-bit score, a signed 8-bit depth, and a byte
//     combining the 2-bit bound kind with the table's 6-bit generation.
//     The all-zero word means "empty", which is why Clear is a raw
//     zero-fill.
//
//   - Clusters: entries are grouped four to a cluster, 32 bytes, so two
//     clusters tile one 64-byte cache line and a probe touches a single
//     line. The backing array is cache-line aligned by over-allocating and
//     offsetting into the raw block.
//
//   - Concurrency: there are no locks. Probe and Save are wait-free and
//     safe for any number of workers; concurrent writers to one slot race
//     by contract and the last whole-word write wins. A stale read costs at
//     most a missed hit or a suboptimal replacement, never corruption,
//     because every field is fixed-width and independently meaningful.
//
//   - Replacement: within a full cluster the victim is the entry minimizing
//     depth − 8 × relativeAge. Deep results from the current search are the
//     most valuable; each elapsed generation prices an entry down by eight
//     plies.
//
//   - Generations: NewSearch advances a 6-bit counter (in steps of 4, so
//     the low bits stay clear for the bound). Probe re-stamps the current
//     generation on every hit, keeping live entries fresh.
//
//   - Hashfull: the occupancy estimate counts current-generation entries
//     among the first thousand slots only. That is a deliberate
//     simplification carried over from the protocol this value feeds, not a
//     statistically representative sample.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Store/Resize/Hashfull
//     signals. By default NoopMetrics is used; plug the metrics/prom
//     adapter to export Prometheus series.
//
// Basic usage
//
//	t := tt.New(tt.Options{SizeMB: 256})
//	t.NewSearch()
//
//	e, ok := t.Probe(fingerprint)
//	if ok && e.Depth() >= depth {
//	    // cutoff or move-ordering decisions from e.Value(), e.Bound(), e.Move()
//	}
//	value, best := search(position, depth)
//	e.Save(fingerprint, value, tt.BoundExact, depth, best)
//
// Sizing and lifecycle
//
// The table is constructed once and shared by reference. Resize rebuilds
// the backing array for a new megabyte budget and waits for the configured
// Pool to go idle first; Clear zeroes the current array in place, splitting
// the work across Options.Threads workers. Both belong to a coordinating
// goroutine and must never overlap with searching. NewSearch is likewise
// coordinator-only: workers observe the generation but never write it.
//
// Probing and saving are the entire worker-side surface:
//
//	e, ok := t.Probe(fp)   // always returns a usable handle
//	e.Save(fp, v, b, d, m) // enforces the overwrite policy internally
//
// On a miss the handle points at the cluster's replacement victim, so the
// save-after-search call is identical on both paths.
package tt
