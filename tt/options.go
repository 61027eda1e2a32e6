package tt

// StoreOutcome tells a Metrics sink what a Save call did to its slot.
type StoreOutcome int

const (
	// StoreWritten — the slot was overwritten with the new result.
	StoreWritten StoreOutcome = iota
	// StoreMoveOnly — only the stored move changed; the rest of the entry
	// won its keep under the overwrite policy.
	StoreMoveOnly
	// StoreSkipped — the policy kept the old entry untouched.
	StoreSkipped
)

// Metrics exposes table-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
// Hit/Miss/Store run on the search hot path; keep implementations cheap.
type Metrics interface {
	Hit()
	Miss()
	Store(outcome StoreOutcome)
	Resize(entries uint64)
	Hashfull(permille int)
}

// Options configures the table. The zero value is usable; defaults are
// applied in New():
//   - SizeMB == 0   => DefaultSizeMB
//   - nil Metrics   => NoopMetrics
//   - nil Threads   => single-threaded clears
type Options struct {
	// SizeMB is the memory budget in megabytes, within
	// [MinSizeMB, MaxSizeMB]. The entry array consumes slightly less than
	// the budget; the difference is cache-line alignment slack.
	SizeMB int

	// Threads reports the configured search thread count. It is sampled on
	// every Clear to pick the zeroing parallelism (values < 1 mean 1).
	// Wire it to the same configuration value the search pool reads.
	Threads func() int

	// Pool, when non-nil, gates Resize: the allocation is only replaced
	// after WaitUntilIdle returns.
	Pool Pool

	// Metrics receives Hit/Miss/Store/Resize/Hashfull signals.
	Metrics Metrics
}
