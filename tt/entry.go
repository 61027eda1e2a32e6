package tt

import "sync/atomic"

// Field layout of the packed entry word, low to high:
//
//	[key:16][move:16][value:16][depth:8][genBound:8]
//
// genBound keeps the 2-bit Bound in its low bits and the 6-bit table
// generation above it. The zero word is an empty slot; that invariant is
// what lets Clear zero-fill raw memory instead of resetting structures.
const (
	moveShift  = 16
	valueShift = 32
	depthShift = 48
	genShift   = 56

	moveMask  = uint64(0xFFFF) << moveShift
	boundMask = 0x03 // low bits of genBound
)

// Generation arithmetic. The counter occupies the top 6 bits of genBound
// and advances by generationDelta per search. Relative age comes from a
// cyclic subtraction: generationCycle is the modulus plus (delta − 1), so
// the bound bits sitting under the counter cannot disturb the masked
// difference. The masked result is 4 per elapsed search; doubling it prices
// one search of staleness at 8 plies of depth.
const (
	generationDelta = 4   // 1 << 2, keeps the bound bits clear
	generationCycle = 259 // 256 + generationDelta - 1
	generationMask  = 0xFC
)

// slot is one stored entry. All access goes through the atomic word; the
// table tolerates concurrent writers by contract, last whole-word write
// wins.
type slot struct {
	bits atomic.Uint64
}

// pack assembles a stored word from decoded fields.
func pack(key, move uint16, value int16, depth int8, genBound uint8) uint64 {
	return uint64(key) |
		uint64(move)<<moveShift |
		uint64(uint16(value))<<valueShift |
		uint64(uint8(depth))<<depthShift |
		uint64(genBound)<<genShift
}

func keyOf(bits uint64) uint16     { return uint16(bits) }
func moveOf(bits uint64) uint16    { return uint16(bits >> moveShift) }
func valueOf(bits uint64) int16    { return int16(uint16(bits >> valueShift)) }
func depthOf(bits uint64) int8     { return int8(uint8(bits >> depthShift)) }
func genBoundOf(bits uint64) uint8 { return uint8(bits >> genShift) }

// partialKey derives the in-cluster discriminator: the top 16 bits of the
// fingerprint. Zero doubles as the empty-slot marker, so a fingerprint with
// zero top bits always probes as a miss and gets re-saved; harmless.
func partialKey(fingerprint uint64) uint16 { return uint16(fingerprint >> 48) }

// agePenalty converts the distance between the current generation and a
// stored genBound byte into replacement-worth plies.
func agePenalty(generation, genBound uint8) int {
	return ((generationCycle + int(generation) - int(genBound)) & generationMask) * 2
}

// worth orders entries for replacement: deeper is better, staler is worse.
func worth(bits uint64, generation uint8) int {
	return int(depthOf(bits)) - agePenalty(generation, genBoundOf(bits))
}

// Entry is a handle to one table slot, returned by Probe. It carries the
// word snapshot loaded during the cluster scan, so the accessors decode one
// consistent view even while other workers keep writing to the slot.
//
// The zero Entry is not valid; Entry values come from Probe.
type Entry struct {
	s    *slot
	t    *Table
	bits uint64
}

// Move returns the stored move handle (MoveNone if none was recorded).
func (e Entry) Move() Move { return Move(moveOf(e.bits)) }

// Value returns the stored score.
func (e Entry) Value() int16 { return valueOf(e.bits) }

// Depth returns the stored search depth in plies.
func (e Entry) Depth() int { return int(depthOf(e.bits)) }

// Bound returns the stored bound kind.
func (e Entry) Bound() Bound { return Bound(genBoundOf(e.bits) & boundMask) }

// Save records a search result in the probed slot.
//
// The stored move survives unless the caller supplies one or the slot holds
// a different position; re-searches of a position at other depths therefore
// keep a known good move even when they produce none themselves. The
// remaining fields are overwritten only when the position differs, the new
// depth is within 4 plies of the stored one or deeper, or the new bound is
// exact. Anything else would trade a deep, still useful bound away over
// hash-index contention.
//
// depth outside [MinDepth, MaxDepth] panics: the packed field is 8 bits
// wide and silent truncation would corrupt the replacement ordering.
func (e Entry) Save(fingerprint uint64, value int16, bound Bound, depth int, move Move) {
	if depth < MinDepth || depth > MaxDepth {
		panic("tt: depth out of range")
	}

	old := e.s.bits.Load()
	key := partialKey(fingerprint)

	m := moveOf(old)
	if move != MoveNone || key != keyOf(old) {
		m = uint16(move)
	}

	t := e.t
	t.saves.Add(1)
	switch {
	case key != keyOf(old) || depth > int(depthOf(old))-4 || bound == BoundExact:
		genBound := t.generation | uint8(bound&boundMask)
		e.s.bits.Store(pack(key, m, value, int8(depth), genBound))
		t.opt.Metrics.Store(StoreWritten)
	case m != moveOf(old):
		e.s.bits.Store(old&^moveMask | uint64(m)<<moveShift)
		t.opt.Metrics.Store(StoreMoveOnly)
	default:
		t.opt.Metrics.Store(StoreSkipped)
	}
}
