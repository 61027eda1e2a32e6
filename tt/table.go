package tt

import (
	"runtime"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/ttable/internal/affinity"
	"github.com/IvanBrykalov/ttable/internal/util"
)

// clusterEntries is the cluster fan-out. Four 8-byte entries make a 32-byte
// cluster, so two clusters tile one 64-byte cache line and a probe touches a
// single line.
const clusterEntries = 4

type cluster struct {
	slots [clusterEntries]slot
}

const clusterBytes = int(unsafe.Sizeof(cluster{}))

// Compile-time layout checks: the packed entry must stay exactly 8 bytes
// and clusters must tile the cache line.
var (
	_ [8 - int(unsafe.Sizeof(slot{}))]byte
	_ [int(unsafe.Sizeof(slot{})) - 8]byte
	_ [-(util.CacheLineSize % clusterBytes)]byte
)

// bindThreshold: clear workers pin themselves to hardware units only when
// the configured thread count is past this. Below it the scheduler does
// fine; past it first-touch placement on NUMA hosts starts to matter.
const bindThreshold = 8

// hashfullSample is the number of entries Hashfull inspects. The first
// thousand slots stand in for the whole table; a skewed but stable estimate
// the surrounding reporting protocol expects verbatim.
const hashfullSample = 1000

// Table is a fixed-size, shared, lock-free transposition table.
//
// Probe and Entry.Save are safe for concurrent use by any number of workers
// and never block. Clear, Resize, and NewSearch belong to a single
// coordinating goroutine and must not overlap with searching; see the
// package documentation for the full contract. Construct with New, share by
// reference.
type Table struct {
	mem      []byte    // raw backing block; owns the allocation
	clusters []cluster // cache-line-aligned view into mem

	// generation occupies the top 6 bits of its byte; the low 2 stay zero
	// so it ORs directly with a Bound at save time. Written only by the
	// coordinator, between searches.
	generation uint8

	opt Options

	// Hot counters, each on its own cache line.
	_      util.CacheLinePad
	probes util.PaddedAtomicUint64
	hits   util.PaddedAtomicUint64
	saves  util.PaddedAtomicUint64
}

// New constructs a table and allocates its first backing block.
// Defaults:
//   - SizeMB == 0 -> DefaultSizeMB
//   - nil Metrics -> NoopMetrics
//   - nil Threads -> single-threaded clears
func New(opt Options) *Table {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.SizeMB == 0 {
		opt.SizeMB = DefaultSizeMB
	}
	// Start one step in so freshly cleared slots (genBound 0) never count
	// as current-generation.
	t := &Table{generation: generationDelta, opt: opt}
	t.Resize(opt.SizeMB)
	return t
}

// Resize rebuilds the table for a budget of mb megabytes. Previous contents
// are discarded; the new block is cleared before Resize returns.
//
// Resize first waits for the configured Pool to go idle: the old block
// would otherwise be freed under workers still probing it. Sizes outside
// [MinSizeMB, MaxSizeMB] panic. A failed allocation is fatal: the runtime
// aborts the process, and that is the intended behavior, because the table
// is load-bearing for search and no partial table can be reasoned about.
func (t *Table) Resize(mb int) {
	if mb < MinSizeMB || mb > MaxSizeMB {
		panic("tt: size out of range")
	}
	if t.opt.Pool != nil {
		t.opt.Pool.WaitUntilIdle()
	}

	// Drop the old block before allocating the replacement so peak usage
	// never doubles the budget.
	t.mem, t.clusters = nil, nil

	count := mb * 1024 * 1024 / clusterBytes
	t.mem = make([]byte, count*clusterBytes+util.CacheLineSize-1)

	base := unsafe.Pointer(unsafe.SliceData(t.mem))
	off := util.AlignOffset(uintptr(base), util.CacheLineSize)
	t.clusters = unsafe.Slice((*cluster)(unsafe.Add(base, off)), count)

	t.opt.Metrics.Resize(uint64(count) * clusterEntries)
	t.Clear()
}

// Clear zeroes every entry under the current allocation, in place.
//
// The clusters are split into one contiguous range per configured thread
// (Options.Threads sampled now, minimum 1) and zeroed concurrently; the
// last range absorbs the division remainder, and Clear joins all workers
// before returning. Past bindThreshold threads each worker locks its OS
// thread and binds it to the hardware unit matching its range index, a
// first-touch locality hint with no correctness weight. The worker exits
// still locked, so the runtime retires the thread together with its altered
// affinity mask.
func (t *Table) Clear() {
	n := 1
	if t.opt.Threads != nil {
		if c := t.opt.Threads(); c > 1 {
			n = c
		}
	}
	if n > len(t.clusters) {
		n = len(t.clusters)
	}
	stride := len(t.clusters) / n

	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if n > bindThreshold {
				runtime.LockOSThread()
				affinity.Set(i)
			}
			lo := i * stride
			hi := lo + stride
			if i == n-1 {
				hi = len(t.clusters)
			}
			clear(t.clusters[lo:hi])
			return nil
		})
	}
	_ = g.Wait() // join barrier; the workers have no failure mode
}

// Probe looks a fingerprint up and always returns a usable handle.
//
// On found == true the handle decodes the stored move/value/depth/bound,
// and the slot's generation has been re-stamped so the entry stops looking
// stale to the replacement ordering. On found == false the handle points at
// the slot a Save should overwrite: the first empty slot of the cluster, or
// the least valuable entry when the cluster is full. Either way the caller
// finishes the same: evaluate the position, then Save through the handle.
//
// The scan and the generation re-stamp are unsynchronized on purpose.
// Interleaving with concurrent writers can cost a missed hit or a poor
// victim choice, nothing more; see the package documentation.
func (t *Table) Probe(fingerprint uint64) (Entry, bool) {
	t.probes.Add(1)

	cl := &t.clusters[t.clusterIndex(fingerprint)]
	key := partialKey(fingerprint)

	for i := range cl.slots {
		s := &cl.slots[i]
		bits := s.bits.Load()
		if keyOf(bits) != key && keyOf(bits) != 0 {
			continue
		}
		// Touch: re-stamp the current generation, keep the bound bits.
		bits = bits&^(uint64(generationMask)<<genShift) | uint64(t.generation)<<genShift
		s.bits.Store(bits)

		if keyOf(bits) != 0 {
			t.hits.Add(1)
			t.opt.Metrics.Hit()
			return Entry{s: s, t: t, bits: bits}, true
		}
		t.opt.Metrics.Miss()
		return Entry{s: s, t: t, bits: bits}, false
	}

	// Full cluster, no match: the least valuable entry is the victim.
	victim := &cl.slots[0]
	vbits := victim.bits.Load()
	for i := 1; i < clusterEntries; i++ {
		s := &cl.slots[i]
		bits := s.bits.Load()
		if worth(bits, t.generation) < worth(vbits, t.generation) {
			victim, vbits = s, bits
		}
	}
	t.opt.Metrics.Miss()
	return Entry{s: victim, t: t, bits: vbits}, false
}

// clusterIndex maps a fingerprint into [0, len(clusters)): widen the low 32
// bits, scale by the cluster count, keep the high word. Uniform for any
// count, no modulo, and independent of the top bits that feed partialKey.
func (t *Table) clusterIndex(fingerprint uint64) uint64 {
	return uint64(uint32(fingerprint)) * uint64(len(t.clusters)) >> 32
}

// Hashfull estimates occupancy in permille: how many of the first thousand
// entries carry the current generation. Probing alone stamps a slot, so the
// estimate tracks "slots the current search has touched", which is what the
// reporting protocol expects. Advisory only.
func (t *Table) Hashfull() int {
	cnt := 0
	for i := 0; i < hashfullSample/clusterEntries; i++ {
		for j := range t.clusters[i].slots {
			bits := t.clusters[i].slots[j].bits.Load()
			if genBoundOf(bits)&generationMask == t.generation {
				cnt++
			}
		}
	}
	t.opt.Metrics.Hashfull(cnt)
	return cnt
}

// NewSearch advances the generation by one step. Entries stamped earlier
// lose 8 plies of replacement worth per elapsed step. Coordinator-only,
// never concurrent with probing workers.
func (t *Table) NewSearch() {
	t.generation += generationDelta
}

// Size returns the table capacity in entries.
func (t *Table) Size() int {
	return len(t.clusters) * clusterEntries
}

// Stats returns a snapshot of the activity counters.
func (t *Table) Stats() Stats {
	return Stats{
		Probes: t.probes.Load(),
		Hits:   t.hits.Load(),
		Saves:  t.saves.Load(),
	}
}
