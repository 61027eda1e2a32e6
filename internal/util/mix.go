package util

// Mix64 finalizes x into a uniformly distributed 64-bit value (splitmix64).
// Benchmarks and tests run sequential integers through it to stand in for
// position fingerprints: raw small integers have empty top bits, and the
// table's in-cluster discriminator lives exactly there.
func Mix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31
	return x
}
