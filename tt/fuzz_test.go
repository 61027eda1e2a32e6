//go:build go1.18

package tt

import "testing"

// Fuzz the probe/save roundtrip on a fresh table under arbitrary inputs.
// Guards against panics in the codec and checks the core invariants: an
// entry saved into an empty cluster probes back with every field intact,
// except when the fingerprint's top 16 bits are zero — that aliases the
// empty-slot marker and must keep missing.
func FuzzProbeSave(f *testing.F) {
	// Seed corpus: a realistic fingerprint, the zero-partial-key alias,
	// the smallest nonzero partial key, and the all-extremes word.
	f.Add(uint64(0x9D39247E33776D41), int16(31), uint8(3), int8(12), uint16(0x1E2))
	f.Add(uint64(0x0000FFFFFFFFFFFF), int16(-5), uint8(1), int8(-3), uint16(0))
	f.Add(uint64(1)<<48, int16(0), uint8(0), int8(0), uint16(0))
	f.Add(^uint64(0), int16(-32768), uint8(2), int8(127), uint16(0xFFFF))

	f.Fuzz(func(t *testing.T, fp uint64, value int16, boundBits uint8, depth int8, move uint16) {
		bound := Bound(boundBits & boundMask)

		tbl := New(Options{SizeMB: 1})
		tbl.NewSearch()

		e, ok := tbl.Probe(fp)
		if ok {
			t.Fatal("fresh table must miss")
		}
		e.Save(fp, value, bound, int(depth), Move(move))

		e, ok = tbl.Probe(fp)
		if partialKey(fp) == 0 {
			if ok {
				t.Fatal("zero partial key must never probe as found")
			}
			return
		}
		if !ok {
			t.Fatal("entry saved into an empty cluster must be found")
		}
		if e.Value() != value || e.Depth() != int(depth) || e.Bound() != bound {
			t.Fatalf("decoded value=%d depth=%d bound=%v, want %d/%d/%v",
				e.Value(), e.Depth(), e.Bound(), value, depth, bound)
		}
		// The slot was a different position (empty), so the supplied move is
		// stored even when it is MoveNone.
		if e.Move() != Move(move) {
			t.Fatalf("decoded move=%#x, want %#x", uint16(e.Move()), move)
		}
		if keyOf(e.bits) != partialKey(fp) {
			t.Fatalf("stored partial key %#x, want %#x", keyOf(e.bits), partialKey(fp))
		}
	})
}

// Fuzz the overwrite policy with two saves of the same position: the second
// one must land exactly when the policy says it does, and the stored move
// must survive null-move re-saves.
func FuzzOverwritePolicy(f *testing.F) {
	f.Add(uint64(0xA1B2C3D4E5F60789), int8(14), int8(9), uint8(1))
	f.Add(uint64(0xA1B2C3D4E5F60789), int8(14), int8(11), uint8(2))
	f.Add(uint64(1)<<48|77, int8(5), int8(1), uint8(3))
	f.Add(^uint64(0), int8(-20), int8(127), uint8(1))

	f.Fuzz(func(t *testing.T, fp uint64, depthA, depthB int8, boundBits uint8) {
		if partialKey(fp) == 0 {
			return // covered by FuzzProbeSave; nothing to re-probe here
		}
		boundB := Bound(boundBits & boundMask)

		tbl := New(Options{SizeMB: 1})
		tbl.NewSearch()

		e, _ := tbl.Probe(fp)
		e.Save(fp, 111, BoundLower, int(depthA), Move(0xABC))

		e, _ = tbl.Probe(fp)
		e.Save(fp, -222, boundB, int(depthB), MoveNone)

		e, ok := tbl.Probe(fp)
		if !ok {
			t.Fatal("position vanished")
		}
		if e.Move() != Move(0xABC) {
			t.Fatalf("null-move re-save lost the stored move: %#x", uint16(e.Move()))
		}
		if int(depthB) > int(depthA)-4 || boundB == BoundExact {
			if e.Depth() != int(depthB) || e.Value() != -222 || e.Bound() != boundB {
				t.Fatalf("second save must overwrite: depth=%d value=%d bound=%v",
					e.Depth(), e.Value(), e.Bound())
			}
		} else if e.Depth() != int(depthA) || e.Value() != 111 || e.Bound() != BoundLower {
			t.Fatalf("second save must be skipped: depth=%d value=%d bound=%v",
				e.Depth(), e.Value(), e.Bound())
		}
	})
}
