package util

// AlignOffset returns how many bytes separate p from the next align
// boundary (0 if p is already aligned). align must be a power of two.
func AlignOffset(p, align uintptr) uintptr {
	return (align - p&(align-1)) & (align - 1)
}

// IsAligned reports whether p sits on an align boundary.
// align must be a power of two.
func IsAligned(p, align uintptr) bool {
	return p&(align-1) == 0
}
