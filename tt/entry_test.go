package tt

import "testing"

// Targeted packing checks: negative scores and depths must survive the
// round-trip, and each field must stay isolated from its neighbors.
func TestPackDecodesFields(t *testing.T) {
	t.Parallel()

	bits := pack(0xBEEF, 0x1234, -321, -6, 0xAB)
	if got := keyOf(bits); got != 0xBEEF {
		t.Errorf("key=%#x, want 0xbeef", got)
	}
	if got := moveOf(bits); got != 0x1234 {
		t.Errorf("move=%#x, want 0x1234", got)
	}
	if got := valueOf(bits); got != -321 {
		t.Errorf("value=%d, want -321", got)
	}
	if got := depthOf(bits); got != -6 {
		t.Errorf("depth=%d, want -6", got)
	}
	if got := genBoundOf(bits); got != 0xAB {
		t.Errorf("genBound=%#x, want 0xab", got)
	}

	// Splicing a new move must leave every other field alone.
	spliced := bits&^moveMask | uint64(0xFFFF)<<moveShift
	if moveOf(spliced) != 0xFFFF {
		t.Errorf("spliced move=%#x", moveOf(spliced))
	}
	if keyOf(spliced) != keyOf(bits) || valueOf(spliced) != valueOf(bits) ||
		depthOf(spliced) != depthOf(bits) || genBoundOf(spliced) != genBoundOf(bits) {
		t.Error("move splice disturbed a neighboring field")
	}
}

func TestAgePenalty(t *testing.T) {
	t.Parallel()

	cases := []struct {
		gen, genBound uint8
		want          int
	}{
		{4, 4, 0},          // same generation
		{4, 4 | 3, 0},      // bound bits must not leak into the distance
		{8, 4, 8},          // one search behind
		{8, 4 | 2, 8},      // same, with a bound stored
		{252, 4, 62 * 8},   // deep history
		{0, 252, 8},        // counter wrapped past zero
		{4, 252, 16},       // two steps across the wrap
		{4, 252 | 1, 16},   // wrap with bound bits set
	}
	for _, c := range cases {
		if got := agePenalty(c.gen, c.genBound); got != c.want {
			t.Errorf("agePenalty(%d, %d)=%d, want %d", c.gen, c.genBound, got, c.want)
		}
	}
}

func TestWorthOrdering(t *testing.T) {
	t.Parallel()

	// Equal age: depth decides.
	deep := pack(1, 0, 0, 10, 8)
	shallow := pack(2, 0, 0, 4, 8)
	if worth(deep, 8) <= worth(shallow, 8) {
		t.Error("deeper entry must outrank shallower at equal age")
	}

	// One step of staleness (8 plies) does not erase a 10-ply advantage.
	stale := pack(3, 0, 0, 20, 8)
	fresh := pack(4, 0, 0, 10, 12)
	if worth(stale, 12) <= worth(fresh, 12) {
		t.Error("one search of age must not outweigh 10 plies of depth")
	}

	// Three steps (24 plies) do.
	fresh = pack(4, 0, 0, 10, 20)
	if worth(stale, 20) >= worth(fresh, 20) {
		t.Error("three searches of age must outweigh 10 plies of depth")
	}
}
