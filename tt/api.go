package tt

// Bound classifies a cached value against the true score of its position:
// exact, an upper bound (fail-low result), or a lower bound (fail-high
// result). BoundNone marks a slot that has never held a usable result.
type Bound uint8

const (
	BoundNone Bound = iota
	BoundUpper
	BoundLower
	BoundExact
)

// String returns a stable lower-case name, handy for logs and labels.
func (b Bound) String() string {
	switch b {
	case BoundUpper:
		return "upper"
	case BoundLower:
		return "lower"
	case BoundExact:
		return "exact"
	default:
		return "none"
	}
}

// Move is an opaque 16-bit move handle stored verbatim alongside a result.
// The table never inspects it beyond comparing against MoveNone.
type Move uint16

// MoveNone is the null move handle. Saving it keeps an already stored move
// for the same position; see Entry.Save.
const MoveNone Move = 0

// Depth limits accepted by Save. Depths are whole plies and must fit the
// packed signed 8-bit field; negative depths are legal (quiescence callers
// use them).
const (
	MinDepth = -128
	MaxDepth = 127
)

// Table size limits in megabytes. The upper limit keeps the cluster count
// inside the 32-bit multiplicative index mapping.
const (
	MinSizeMB     = 1
	MaxSizeMB     = 131072
	DefaultSizeMB = 16
)

// Pool is the slice of a search worker pool the table needs: how many
// workers are configured, and a way to wait until none of them is
// searching. Resize consults it before replacing the allocation.
type Pool interface {
	ThreadCount() int
	WaitUntilIdle()
}

// Stats is a snapshot of the table's activity counters.
type Stats struct {
	Probes uint64 // Probe calls
	Hits   uint64 // probes that found a matching entry
	Saves  uint64 // Save calls (including ones the policy skipped)
}
